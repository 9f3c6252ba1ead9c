package migrations

import (
	"context"

	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
}
