package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
	"github.com/m04kA/barbershop-reservation/pkg/psqlbuilder"
)

const usersTable = "users"

// Repository репозиторий клиентов, идентифицируемых по LINE user id
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает клиента по line_user_id или обновляет имя и аватар существующего.
// customer.ID используется только при вставке; при обновлении возвращается сохраненный ID и роль.
// Пустое имя и отсутствующий аватар не затирают сохраненные значения.
func (r *Repository) Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertQuery(customer).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var pictureURL sql.NullString
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Name,
		&pictureURL,
		&customer.Role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// Ошибка драйвера остается в цепочке вместе с кодом Postgres
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	customer.PictureURL = nil
	if pictureURL.Valid {
		customer.PictureURL = &pictureURL.String
	}
	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return customer, nil
}

// GetByLineUserID получает клиента по LINE user id
func (r *Repository) GetByLineUserID(ctx context.Context, lineUserID string) (*domain.Customer, error) {
	return r.getBy(ctx, "GetByLineUserID", squirrel.Eq{"line_user_id": lineUserID})
}

// GetByID получает клиента по его ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSelectQuery(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var customer domain.Customer
	var pictureURL sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.LineUserID,
		&customer.Name,
		&pictureURL,
		&customer.Role,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %w", ErrScanRow, op, err)
	}

	if pictureURL.Valid {
		customer.PictureURL = &pictureURL.String
	}
	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}

func buildSelectQuery(where squirrel.Eq) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"line_user_id",
		"name",
		"picture_url",
		"role",
		"created_at",
		"updated_at",
	).
		From(usersTable).
		Where(where)
}

func buildUpsertQuery(customer *domain.Customer) squirrel.InsertBuilder {
	return psqlbuilder.Insert(usersTable).
		Columns(
			"id",
			"line_user_id",
			"name",
			"picture_url",
		).
		Values(
			customer.ID,
			customer.LineUserID,
			customer.Name,
			customer.PictureURL,
		).
		Suffix("ON CONFLICT (line_user_id) DO UPDATE SET " +
			"name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name), " +
			"picture_url = COALESCE(EXCLUDED.picture_url, users.picture_url), " +
			"updated_at = NOW() " +
			"RETURNING id, name, picture_url, role, created_at, updated_at")
}
