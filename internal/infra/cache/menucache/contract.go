package menucache

import (
	"context"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// MenuLister источник меню, который кэшируется
type MenuLister interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
}

// Metrics счетчик обращений к кэшу
type Metrics interface {
	IncCache(cache, result string)
}

type Logger interface {
	Warn(format string, v ...interface{})
}
