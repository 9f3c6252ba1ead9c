package list_reservations

import (
	"time"

	"github.com/m04kA/barbershop-reservation/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	StaffID    *string  `json:"staff_id"`
	ReservedAt string   `json:"reserved_at"`
	Status     string   `json:"status"`
	MenuIDs    []string `json:"menu_ids"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationListResponse) *ListResponse {
	result := &ListResponse{Reservations: make([]ReservationResponse, 0, len(resp.Reservations))}
	for _, r := range resp.Reservations {
		result.Reservations = append(result.Reservations, ReservationResponse{
			ID:         r.ID,
			UserID:     r.UserID,
			StaffID:    r.StaffID,
			ReservedAt: r.ReservedAt.Format(time.RFC3339),
			Status:     r.Status,
			MenuIDs:    r.MenuIDs,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
		})
	}
	return result
}
