package domain

import (
	"strings"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "reserved"
	StatusCanceled  ReservationStatus = "canceled"
	StatusCompleted ReservationStatus = "completed"
)

// AllStatuses lists every known reservation status
var AllStatuses = []ReservationStatus{
	StatusReserved,
	StatusCanceled,
	StatusCompleted,
}

// IsValid returns true if the status is one of the known values
func (s ReservationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Reservation represents a customer's reservation header.
// The selected menus are stored separately as reservation_menus rows.
type Reservation struct {
	ID         string
	UserID     string
	StaffID    *string // nil = no preference
	ReservedAt time.Time
	Status     ReservationStatus
	MenuIDs    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the reservation belongs to the customer
func (r *Reservation) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	UserID     *string            // nil = все клиенты
	Status     *ReservationStatus // nil = любой статус
	ReservedOn *time.Time         // nil = любая дата, иначе бронирования за эти сутки
}

// ConflictKey identifies reservations that must not be duplicated
// while in the reserved status
type ConflictKey struct {
	ReservedAt time.Time
	UserID     string
	StaffID    *string
}

// NormalizeStaffID maps the "no preference" sentinels to nil
func NormalizeStaffID(staffID *string) *string {
	if staffID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*staffID)
	for _, sentinel := range NoStaffSentinels {
		if strings.EqualFold(trimmed, sentinel) {
			return nil
		}
	}
	return &trimmed
}
