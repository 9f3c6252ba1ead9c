package update_reservation_status

import (
	"time"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/internal/service/reservations/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(identity domain.Identity) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Identity: identity,
		Status:   r.Status,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(r *models.ReservationResponse) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		StaffID:    r.StaffID,
		ReservedAt: r.ReservedAt.Format(time.RFC3339),
		Status:     r.Status,
		MenuIDs:    r.MenuIDs,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
	}
}
