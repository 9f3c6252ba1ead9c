package line

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// Verifier проверяет ID-токены LINE Login (HS256, секрет канала)
type Verifier struct {
	channelID     string
	channelSecret []byte
	now           func() time.Time
	log           Logger
}

// NewVerifier создает новый экземпляр проверки токенов для канала
func NewVerifier(channelID, channelSecret string, log Logger) *Verifier {
	return &Verifier{
		channelID:     channelID,
		channelSecret: []byte(channelSecret),
		now:           time.Now,
		log:           log,
	}
}

// Verify проверяет токен и возвращает личность вызывающего
func (v *Verifier) Verify(rawToken string) (domain.Identity, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return domain.Identity{}, ErrMissingToken
	}

	// Без ID и секрета канала ни один токен не принимается
	if len(v.channelSecret) == 0 || v.channelID == "" {
		v.log.Warn("Verify: channel id or secret is not configured")
		return domain.Identity{}, fmt.Errorf("%w: channel credentials are not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		return v.channelSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(v.channelID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid {
		v.log.Warn("Verify: rejected id token: %v", err)
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return domain.Identity{}, ErrMissingSubject
	}

	identity := domain.Identity{
		LineUserID:  claims.Subject,
		DisplayName: claims.Name,
	}
	if claims.Picture != "" {
		picture := claims.Picture
		identity.PictureURL = &picture
	}

	return identity, nil
}
