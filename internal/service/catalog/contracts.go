package catalog

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// MenuRepository источник меню (БД или кеш поверх нее)
type MenuRepository interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListActiveStaff(ctx context.Context) ([]domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
