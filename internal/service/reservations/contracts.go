package reservations

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByLineUserID(ctx context.Context, lineUserID string) (*domain.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
