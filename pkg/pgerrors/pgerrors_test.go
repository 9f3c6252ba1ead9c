package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	serial := fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
	fk := &pq.Error{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(serial))
	assert.True(t, IsSerializationFailure(serial))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsSerializationFailure(nil))
}
