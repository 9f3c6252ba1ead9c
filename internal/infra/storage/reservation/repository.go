package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
	"github.com/m04kA/barbershop-reservation/pkg/pgerrors"
	"github.com/m04kA/barbershop-reservation/pkg/psqlbuilder"
)

const (
	reservationsTable     = "reservations"
	reservationMenusTable = "reservation_menus"
)

var reservationColumns = []string{
	"id",
	"user_id",
	"staff_id",
	"reserved_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их меню
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заголовок бронирования.
// ID генерируется вызывающим кодом. Если в контексте есть транзакция, используется она.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(reservationsTable).
		Columns(
			"id",
			"user_id",
			"staff_id",
			"reserved_at",
			"status",
		).
		Values(
			reservation.ID,
			reservation.UserID,
			reservation.StaffID,
			reservation.ReservedAt,
			reservation.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create - execute insert", err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// AddMenus привязывает меню к бронированию одним многострочным INSERT
func (r *Repository) AddMenus(ctx context.Context, reservationID string, menuIDs []string) error {
	if len(menuIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildAddMenusQuery(reservationID, menuIDs).ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddMenus - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError("AddMenus - execute insert", err)
	}

	return nil
}

// ExistsConflict проверяет, есть ли активное бронирование с тем же временем, клиентом и мастером.
// Пустой мастер сравнивается через IS NULL.
func (r *Repository) ExistsConflict(ctx context.Context, key domain.ConflictKey) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildConflictQuery(key).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsConflict - build select query: %v", ErrBuildQuery, err)
	}

	var id string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapWriteError("ExistsConflict - execute query", err)
	}

	return true, nil
}

// GetByID получает бронирование по ID вместе с его меню
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	menus, err := r.ListMenuIDs(ctx, []string{reservation.ID})
	if err != nil {
		return nil, err
	}
	reservation.MenuIDs = menus[reservation.ID]

	return reservation, nil
}

// List получает бронирования по фильтру, отсортированные по времени бронирования по возрастанию.
// У каждого бронирования заполняется список меню.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(reservations) == 0 {
		return reservations, nil
	}

	ids := make([]string, len(reservations))
	for i, reservation := range reservations {
		ids[i] = reservation.ID
	}

	menus, err := r.ListMenuIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, reservation := range reservations {
		reservation.MenuIDs = menus[reservation.ID]
		if reservation.MenuIDs == nil {
			reservation.MenuIDs = make([]string, 0)
		}
	}

	return reservations, nil
}

// ListMenuIDs возвращает меню бронирований в порядке добавления, сгруппированные по ID бронирования
func (r *Repository) ListMenuIDs(ctx context.Context, reservationIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_id", "menu_id").
		From(reservationMenusTable).
		Where(squirrel.Eq{"reservation_id": reservationIDs}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMenuIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMenuIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID, menuID string
		if err := rows.Scan(&reservationID, &menuID); err != nil {
			return nil, fmt.Errorf("%w: ListMenuIDs - scan row: %v", ErrScanRow, err)
		}
		result[reservationID] = append(result[reservationID], menuID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMenuIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(reservationsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func buildConflictQuery(key domain.ConflictKey) squirrel.SelectBuilder {
	return psqlbuilder.Select("id").
		From(reservationsTable).
		Where(squirrel.Eq{"reserved_at": key.ReservedAt}).
		Where(squirrel.Eq{"user_id": key.UserID}).
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		Where(squirrel.Eq{"staff_id": key.StaffID}).
		Limit(1)
}

func buildAddMenusQuery(reservationID string, menuIDs []string) squirrel.InsertBuilder {
	insert := psqlbuilder.Insert(reservationMenusTable).
		Columns("reservation_id", "menu_id")
	for _, menuID := range menuIDs {
		insert = insert.Values(reservationID, menuID)
	}
	return insert
}

func buildListQuery(filter domain.ReservationFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Бронирования за сутки [день, день+1)
	if filter.ReservedOn != nil {
		dayStart := *filter.ReservedOn
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"reserved_at": dayStart}).
			Where(squirrel.Lt{"reserved_at": dayStart.AddDate(0, 0, 1)})
	}

	return selectBuilder.OrderBy("reserved_at ASC", "created_at ASC")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var staffID sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&staffID,
		&reservation.ReservedAt,
		&reservation.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if staffID.Valid {
		reservation.StaffID = &staffID.String
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// mapWriteError переводит ошибки Postgres в ошибки репозитория
func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrDuplicateReservation, op, err)
	case pgerrors.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrConcurrentWrite, op, err)
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrUnknownReference, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}
