package middleware

import (
	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// TokenVerifier проверяет ID-токен и возвращает личность вызывающего
type TokenVerifier interface {
	Verify(rawToken string) (domain.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
