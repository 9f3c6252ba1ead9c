package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	"github.com/m04kA/barbershop-reservation/internal/domain"
)

const (
	msgMissingToken = "ログインが必要です"
	msgInvalidToken = "認証に失敗しました。再度ログインしてください"

	bearerPrefix = "Bearer "
)

// Auth проверяет заголовок Authorization: Bearer <LINE ID token>
// и кладет domain.Identity в контекст запроса
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				logger.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			identity, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				logger.Warn("%s %s - invalid id token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := domain.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
