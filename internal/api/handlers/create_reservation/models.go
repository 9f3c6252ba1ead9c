package create_reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	createReservation "github.com/m04kA/barbershop-reservation/internal/usecase/create_reservation"
)

// localLayouts ISO-8601 без часового пояса, трактуются в часовом поясе салона
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var errInvalidReservedAt = errors.New("invalid reserved_at")

// CreateReservationRequest HTTP request model.
// user_id (users.id) используется только без аутентификации
type CreateReservationRequest struct {
	UserID     string   `json:"user_id"`
	MenuIDs    []string `json:"menu_ids"`
	StaffID    *string  `json:"staff_id,omitempty"`
	ReservedAt string   `json:"reserved_at"`
	Status     *string  `json:"status,omitempty"`
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

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Reservation   ReservationResponse `json:"reservation"`
	MenuIDs       []string            `json:"menu_ids"`
	TotalPrice    int                 `json:"total_price"`
	TotalDuration int                 `json:"total_duration"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// С identity клиент определяется по ID-токену, без нее по user_id из тела
func (r *CreateReservationRequest) ToUseCaseRequest(identity *domain.Identity, loc *time.Location) (*createReservation.Request, error) {
	reservedAt, err := parseReservedAt(r.ReservedAt, loc)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		MenuIDs:    r.MenuIDs,
		StaffID:    r.StaffID,
		ReservedAt: reservedAt,
	}
	if identity != nil {
		req.Identity = *identity
	} else {
		req.CustomerID = strings.TrimSpace(r.UserID)
	}
	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		req.Status = &status
	}
	return req, nil
}

func parseReservedAt(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errInvalidReservedAt
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidReservedAt
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		Reservation: ReservationResponse{
			ID:         resp.ID,
			UserID:     resp.UserID,
			StaffID:    resp.StaffID,
			ReservedAt: resp.ReservedAt.Format(time.RFC3339),
			Status:     resp.Status,
			MenuIDs:    resp.MenuIDs,
			CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
		},
		MenuIDs:       resp.MenuIDs,
		TotalPrice:    resp.TotalPrice,
		TotalDuration: resp.TotalDuration,
	}
}
