package line

import (
	"github.com/golang-jwt/jwt/v5"
)

// Issuer издатель ID-токенов LINE Login
const Issuer = "https://access.line.me"

// Claims поля ID-токена LINE, используемые сервисом
type Claims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}
