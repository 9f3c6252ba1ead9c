package get_available_slots

import (
	"fmt"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	if len(req.MenuIDs) > domain.MaxMenusPerReservation {
		return fmt.Errorf("%w: too many menus (max %d)", ErrInvalidInput, domain.MaxMenusPerReservation)
	}

	return nil
}
