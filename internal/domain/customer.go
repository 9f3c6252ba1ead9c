package domain

import (
	"context"
	"time"
)

// Role of a customer account
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Customer represents a shop customer identified by the LINE account
type Customer struct {
	ID         string
	LineUserID string
	Name       string
	PictureURL *string
	Role       Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the customer may see and manage all reservations
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Identity is the externally authenticated caller (LINE profile)
type Identity struct {
	LineUserID  string
	DisplayName string
	PictureURL  *string
}

type identityKey struct{}

// ContextWithIdentity кладет подтвержденную личность вызывающего в контекст запроса
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext достает личность вызывающего из контекста
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok && identity.LineUserID != ""
}
