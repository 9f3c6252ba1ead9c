package get_menus

import (
	"github.com/m04kA/barbershop-reservation/internal/service/catalog/models"
)

// MenuResponse HTTP response model
type MenuResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int     `json:"price"`
	Duration    int     `json:"duration"`
	Image       *string `json:"image"`
	Category    string  `json:"category"`
}

// MenuGroupResponse HTTP response model
type MenuGroupResponse struct {
	Category string         `json:"category"`
	Label    string         `json:"label"`
	Menus    []MenuResponse `json:"menus"`
}

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Groups []MenuGroupResponse `json:"groups"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.CatalogResponse) *CatalogResponse {
	result := &CatalogResponse{Groups: make([]MenuGroupResponse, 0, len(resp.Groups))}
	for _, g := range resp.Groups {
		group := MenuGroupResponse{
			Category: g.Category,
			Label:    g.Label,
			Menus:    make([]MenuResponse, 0, len(g.Menus)),
		}
		for _, m := range g.Menus {
			group.Menus = append(group.Menus, MenuResponse{
				ID:          m.ID,
				Name:        m.Name,
				Description: m.Description,
				Price:       m.Price,
				Duration:    m.DurationMinutes,
				Image:       m.Image,
				Category:    m.Category,
			})
		}
		result.Groups = append(result.Groups, group)
	}
	return result
}
