package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/barbershop-reservation/internal/availability"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/pkg/ptr"
)

// UseCase use case для получения сетки слотов на дату.
// Результат информационный, создание бронирования от него не зависит.
type UseCase struct {
	reservationRepo ReservationRepository
	menuRepo        MenuRepository
	calendar        availability.ShopCalendar
	mode            availability.OverlapMode
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	menuRepo MenuRepository,
	calendar availability.ShopCalendar,
	mode availability.OverlapMode,
	logger Logger,
) *UseCase {
	if !mode.IsValid() {
		mode = availability.OverlapRequestDuration
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		menuRepo:        menuRepo,
		calendar:        calendar,
		mode:            mode,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, menus=%v, duration=%d, mode=%s",
		req.Date.Format(domain.DateFormat), req.MenuIDs, req.Duration, uc.mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Длительности меню
	menus, err := uc.menuRepo.ListMenus(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list menus: %v", err)
		return nil, fmt.Errorf("%w: failed to list menus: %v", ErrInternal, err)
	}
	lookup := availability.LookupFromMenus(menus)
	duration := availability.ResolveDuration(req.MenuIDs, lookup, req.Duration)

	// 3. Активные бронирования на эти сутки
	dayStart := uc.calendar.StartOfDay(req.Date)
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		Status:     ptr.Ptr(domain.StatusReserved),
		ReservedOn: &dayStart,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list reservations on %s: %v",
			dayStart.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	existing := make([]availability.Existing, 0, len(reservations))
	for _, r := range reservations {
		existing = append(existing, availability.Existing{
			Start:           r.ReservedAt,
			DurationMinutes: availability.ResolveDuration(r.MenuIDs, lookup, 0),
		})
	}

	// 4. Сетка слотов
	schedule := uc.calendar.Generate(req.Date, duration, existing, uc.mode)

	slots := make([]Slot, len(schedule.Slots))
	for i, s := range schedule.Slots {
		slots[i] = Slot{StartTime: s.Time, Occupied: s.Occupied}
	}

	uc.logger.Info("GetAvailableSlots: date=%s closed=%t open_slots=%d/%d",
		dayStart.Format(domain.DateFormat), schedule.Closed, schedule.OpenSlots(), len(slots))

	return &Response{
		Date:            schedule.Date,
		Closed:          schedule.Closed,
		Open:            schedule.Window.Open,
		Close:           schedule.Window.Close,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
