package get_closed_days

import (
	"context"

	getClosedDays "github.com/m04kA/barbershop-reservation/internal/usecase/get_closed_days"
)

type GetClosedDaysUseCase interface {
	Execute(ctx context.Context, req *getClosedDays.Request) (*getClosedDays.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
