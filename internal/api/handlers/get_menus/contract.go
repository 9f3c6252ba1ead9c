package get_menus

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/service/catalog/models"
)

type CatalogService interface {
	GetMenus(ctx context.Context) (*models.CatalogResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
