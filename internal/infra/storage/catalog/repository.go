package catalog

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

// Repository справочники салона: меню и мастера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListMenus получает все меню в порядке создания.
// Категория нормализуется при чтении.
func (r *Repository) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"price",
		"duration",
		"image",
		"category",
		"created_at",
		"updated_at",
	).
		From("menus").
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMenus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMenus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	menus := make([]domain.Menu, 0)
	for rows.Next() {
		var menu domain.Menu
		var description, image, category sql.NullString
		var duration sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&menu.ID,
			&menu.Name,
			&description,
			&menu.Price,
			&duration,
			&image,
			&category,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMenus - scan row: %v", ErrScanRow, err)
		}

		if description.Valid {
			menu.Description = &description.String
		}
		if image.Valid {
			menu.Image = &image.String
		}
		menu.DurationMinutes = int(duration.Int64)
		menu.Category = domain.NormalizeCategory(category.String)
		menu.CreatedAt = createdAt.Time
		menu.UpdatedAt = updatedAt.Time

		menus = append(menus, menu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMenus - rows error: %v", ErrScanRow, err)
	}

	return menus, nil
}

// ListActiveStaff получает активных мастеров в порядке создания
func (r *Repository) ListActiveStaff(ctx context.Context) ([]domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("staffs").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffs := make([]domain.Staff, 0)
	for rows.Next() {
		var staff domain.Staff
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&staff.ID, &staff.Name, &staff.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActiveStaff - scan row: %v", ErrScanRow, err)
		}

		staff.CreatedAt = createdAt.Time
		staff.UpdatedAt = updatedAt.Time
		staffs = append(staffs, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaff - rows error: %v", ErrScanRow, err)
	}

	return staffs, nil
}

// IsActiveStaff проверяет, что мастер существует и принимает записи
func (r *Repository) IsActiveStaff(ctx context.Context, staffID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("is_active").
		From("staffs").
		Where(squirrel.Eq{"id": staffID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsActiveStaff - build select query: %v", ErrBuildQuery, err)
	}

	var active bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsActiveStaff - scan row: %v", ErrScanRow, err)
	}

	return active, nil
}
