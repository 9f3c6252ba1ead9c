// Package pgerrors классифицирует ошибки PostgreSQL, пришедшие через lib/pq
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
)

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// IsSerializationFailure конфликт сериализуемых транзакций
func IsSerializationFailure(err error) bool {
	return hasCode(err, codeSerializationFailure)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
