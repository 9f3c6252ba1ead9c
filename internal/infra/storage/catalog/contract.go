package catalog

import (
	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
