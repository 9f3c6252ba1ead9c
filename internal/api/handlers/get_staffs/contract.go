package get_staffs

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/service/catalog/models"
)

type CatalogService interface {
	ListStaff(ctx context.Context) (*models.StaffListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
