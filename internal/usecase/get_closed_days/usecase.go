package get_closed_days

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-reservation/internal/availability"
	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// UseCase перечисляет выходные дни салона за месяц
type UseCase struct {
	calendar availability.ShopCalendar
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendar availability.ShopCalendar, logger Logger) *UseCase {
	return &UseCase{calendar: calendar, logger: logger}
}

// Execute выполняет use case
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	days := uc.calendar.ClosedDays(req.Month)
	month := uc.calendar.StartOfDay(req.Month)
	month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())

	uc.logger.Info("GetClosedDays: month=%s closed=%d", month.Format(domain.MonthFormat), len(days))

	return &Response{Month: month, Days: days}, nil
}
