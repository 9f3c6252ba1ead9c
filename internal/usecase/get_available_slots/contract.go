package get_available_slots

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// MenuRepository источник длительностей меню
type MenuRepository interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
