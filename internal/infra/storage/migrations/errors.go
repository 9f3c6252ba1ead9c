package migrations

import "errors"

var (
	// ErrReadMigrations возвращается, если не удалось прочитать встроенные файлы миграций
	ErrReadMigrations = errors.New("migrations: failed to read migration files")

	// ErrApplyMigration возвращается при ошибке применения миграции
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)
