package create_reservation

import (
	"time"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Identity   domain.Identity           // Клиент (LINE профиль из ID-токена), создается или обновляется
	CustomerID string                    // Явный users.id без аутентификации, клиент должен существовать
	MenuIDs    []string                  // Выбранные меню, не пусто
	StaffID    *string                   // nil, "", "none", "null" = без предпочтения
	ReservedAt time.Time                 // Дата и время начала
	Status     *domain.ReservationStatus // nil = reserved
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         string
	UserID     string
	StaffID    *string
	ReservedAt time.Time
	Status     string
	MenuIDs    []string

	TotalPrice    int // сумма цен выбранных меню
	TotalDuration int // минуты

	CreatedAt time.Time
	UpdatedAt time.Time
}
