package get_closed_days

import (
	"github.com/m04kA/barbershop-reservation/internal/domain"
	getClosedDays "github.com/m04kA/barbershop-reservation/internal/usecase/get_closed_days"
)

// ClosedDaysResponse HTTP response model
type ClosedDaysResponse struct {
	Month string   `json:"month"`
	Days  []string `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getClosedDays.Response) *ClosedDaysResponse {
	days := make([]string, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = d.Format(domain.DateFormat)
	}
	return &ClosedDaysResponse{
		Month: resp.Month.Format(domain.MonthFormat),
		Days:  days,
	}
}
