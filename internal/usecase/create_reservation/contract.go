package create_reservation

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ExistsConflict(ctx context.Context, key domain.ConflictKey) (bool, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	AddMenus(ctx context.Context, reservationID string, menuIDs []string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// CatalogRepository интерфейс справочников меню и мастеров
type CatalogRepository interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
	IsActiveStaff(ctx context.Context, staffID string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик результатов бронирования
type Metrics interface {
	IncReservation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
