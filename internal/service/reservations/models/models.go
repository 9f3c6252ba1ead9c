package models

import (
	"time"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// ListRequest запрос на получение бронирований.
// Identity == nil означает вариант без аутентификации: возвращаются все бронирования.
type ListRequest struct {
	Identity *domain.Identity
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Identity domain.Identity
	Status   string
}

// ReservationResponse бронирование с его меню
type ReservationResponse struct {
	ID         string
	UserID     string
	StaffID    *string
	ReservedAt time.Time
	Status     string
	MenuIDs    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse
}

// FromDomainReservation конвертирует доменную модель в ответ
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	menuIDs := r.MenuIDs
	if menuIDs == nil {
		menuIDs = make([]string, 0)
	}
	return &ReservationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		StaffID:    r.StaffID,
		ReservedAt: r.ReservedAt,
		Status:     string(r.Status),
		MenuIDs:    menuIDs,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		result.Reservations = append(result.Reservations, *FromDomainReservation(r))
	}
	return result
}
