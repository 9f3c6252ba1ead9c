package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	opts  *sql.TxOptions
	calls int
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.calls++
	f.opts = opts
	return f.tx, nil
}

func TestManager_CommitsOnSuccess(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
	require.NotNil(t, b.opts)
	assert.Equal(t, sql.LevelSerializable, b.opts.Isolation)
}

func TestManager_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
}

func TestManager_CommitErrorKeepsCause(t *testing.T) {
	cause := errors.New("could not serialize access")
	b := &fakeBeginner{tx: &fakeTx{commitErr: cause}}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommit)
	assert.ErrorIs(t, err, cause)
}

func TestManager_NestedReusesOuterTransaction(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, b.calls)
}

func TestManager_ReadOnlySnapshot(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil })

	require.NoError(t, err)
	require.NotNil(t, b.opts)
	assert.True(t, b.opts.ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, b.opts.Isolation)
	assert.True(t, b.tx.committed)
}
