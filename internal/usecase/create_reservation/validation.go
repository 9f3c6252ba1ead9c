package create_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	lineUserID := strings.TrimSpace(req.Identity.LineUserID)
	customerID := strings.TrimSpace(req.CustomerID)

	switch {
	case lineUserID == "" && customerID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case lineUserID != "" && customerID != "":
		return fmt.Errorf("%w: both line user and customer id are set", ErrInvalidInput)
	}

	if customerID != "" {
		if _, err := uuid.Parse(customerID); err != nil {
			return fmt.Errorf("%w: invalid user id %q", ErrInvalidInput, customerID)
		}
	}

	if len(req.MenuIDs) == 0 {
		return fmt.Errorf("%w: at least one menu is required", ErrInvalidInput)
	}

	if len(req.MenuIDs) > domain.MaxMenusPerReservation {
		return fmt.Errorf("%w: too many menus (max %d)", ErrInvalidInput, domain.MaxMenusPerReservation)
	}

	for _, id := range req.MenuIDs {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: invalid menu id %q", ErrInvalidInput, id)
		}
	}

	if req.ReservedAt.IsZero() {
		return fmt.Errorf("%w: reserved_at is required", ErrInvalidInput)
	}

	if req.Status != nil && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	if staffID := domain.NormalizeStaffID(req.StaffID); staffID != nil {
		if _, err := uuid.Parse(*staffID); err != nil {
			return fmt.Errorf("%w: invalid staff id %q", ErrInvalidInput, *staffID)
		}
	}

	return nil
}

// uniqueMenuIDs убирает повторы, сохраняя порядок выбора
func uniqueMenuIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// displayName обрезает имя клиента до допустимой длины
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= domain.MaxDisplayNameLength {
		return name
	}
	return string([]rune(name)[:domain.MaxDisplayNameLength])
}
