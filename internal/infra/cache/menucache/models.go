package menucache

import (
	"time"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// cachedMenu представление меню в Redis
type cachedMenu struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           int       `json:"price"`
	DurationMinutes int       `json:"duration"`
	Image           *string   `json:"image,omitempty"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toCached(menus []domain.Menu) []cachedMenu {
	result := make([]cachedMenu, len(menus))
	for i, m := range menus {
		result[i] = cachedMenu{
			ID:              m.ID,
			Name:            m.Name,
			Description:     m.Description,
			Price:           m.Price,
			DurationMinutes: m.DurationMinutes,
			Image:           m.Image,
			Category:        string(m.Category),
			CreatedAt:       m.CreatedAt,
			UpdatedAt:       m.UpdatedAt,
		}
	}
	return result
}

func fromCached(cached []cachedMenu) []domain.Menu {
	result := make([]domain.Menu, len(cached))
	for i, c := range cached {
		result[i] = domain.Menu{
			ID:              c.ID,
			Name:            c.Name,
			Description:     c.Description,
			Price:           c.Price,
			DurationMinutes: c.DurationMinutes,
			Image:           c.Image,
			Category:        domain.Category(c.Category),
			CreatedAt:       c.CreatedAt,
			UpdatedAt:       c.UpdatedAt,
		}
	}
	return result
}
