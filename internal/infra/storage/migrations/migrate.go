// Package migrations применяет встроенные SQL миграции схемы.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
	"github.com/m04kA/barbershop-reservation/pkg/psqlbuilder"
)

//go:embed *.sql
var embedded embed.FS

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrator применяет миграции по порядку имен файлов, каждую в своей транзакции
type Migrator struct {
	db        DBExecutor
	txManager TxManager
	logger    Logger
	files     fs.FS
}

// NewMigrator создает мигратор для встроенных миграций
func NewMigrator(db DBExecutor, txManager TxManager, logger Logger) *Migrator {
	return &Migrator{
		db:        db,
		txManager: txManager,
		logger:    logger,
		files:     embedded,
	}
}

// Up применяет все еще не примененные миграции и возвращает их имена
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.db.ExecContext(ctx, createVersionsTable); err != nil {
		return nil, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	names, err := listMigrations(m.files)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0)
	for _, name := range names {
		done, err := m.isApplied(ctx, name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		body, err := fs.ReadFile(m.files, name)
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}

		err = m.txManager.Do(ctx, func(ctx context.Context) error {
			executor := dbmetrics.GetExecutor(ctx, m.db)

			if _, err := executor.ExecContext(ctx, string(body)); err != nil {
				return err
			}

			query, args, err := psqlbuilder.Insert("schema_migrations").
				Columns("version").
				Values(name).
				ToSql()
			if err != nil {
				return err
			}

			_, err = executor.ExecContext(ctx, query, args...)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}

		m.logger.Info("Applied migration %s", name)
		applied = append(applied, name)
	}

	return applied, nil
}

func (m *Migrator) isApplied(ctx context.Context, name string) (bool, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: build version query: %v", ErrApplyMigration, err)
	}

	var count int
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: check %s: %v", ErrApplyMigration, name, err)
	}

	return count > 0, nil
}

// listMigrations возвращает имена .sql файлов в лексикографическом порядке
func listMigrations(files fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}
