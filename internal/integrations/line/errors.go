package line

import "errors"

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = errors.New("line verifier: missing id token")

	// ErrInvalidToken возвращается, когда подпись, издатель, аудитория или срок токена не прошли проверку
	ErrInvalidToken = errors.New("line verifier: invalid id token")

	// ErrMissingSubject возвращается, когда в токене нет LINE user id
	ErrMissingSubject = errors.New("line verifier: id token has no subject")
)
