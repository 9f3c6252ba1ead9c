package domain

import "time"

// Staff represents a stylist who can be assigned to a reservation
type Staff struct {
	ID       string
	Name     string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
