package customer

import (
	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
