package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	getAvailableSlots "github.com/m04kA/barbershop-reservation/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	Closed          bool            `json:"closed"`
	Open            string          `json:"open"`
	Close           string          `json:"close"`
	DurationMinutes int             `json:"duration"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:     slot.StartTime.String(),
			Occupied: slot.Occupied,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Closed:          resp.Closed,
		Open:            resp.Open.String(),
		Close:           resp.Close.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, menuIDs, durationStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil || duration < 0 {
			return nil, fmt.Errorf("duration: invalid value %q", durationStr)
		}
	}

	return &getAvailableSlots.Request{
		Date:     date,
		MenuIDs:  handlers.SplitList(menuIDs),
		Duration: duration,
	}, nil
}
