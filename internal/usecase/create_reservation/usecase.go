package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-reservation/internal/availability"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	customerRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/reservation"
	"github.com/m04kA/barbershop-reservation/pkg/pgerrors"
)

const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeFailed   = "failed"

	maxWriteAttempts = 3
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	customerRepo    CustomerRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	newID           func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	customerRepo CustomerRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		newID:           uuid.NewString,
	}
}

// Execute выполняет use case создания бронирования.
// Клиент, проверка конфликта и обе вставки выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: line_user=%s, customer=%s, menus=%v, reserved_at=%s",
		req.Identity.LineUserID, req.CustomerID, req.MenuIDs, req.ReservedAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	menuIDs := uniqueMenuIDs(req.MenuIDs)
	staffID := domain.NormalizeStaffID(req.StaffID)

	status := domain.StatusReserved
	if req.Status != nil {
		status = *req.Status
	}

	// 2. Проверяем меню и считаем итог
	menus, err := uc.catalogRepo.ListMenus(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list menus: %v", err)
		return nil, uc.fail(fmt.Errorf("%w: failed to list menus: %v", ErrInternal, err))
	}

	totalPrice, err := sumPrices(menus, menuIDs)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}
	totalDuration := availability.ResolveDuration(menuIDs, availability.LookupFromMenus(menus), 0)

	// 3. Проверяем мастера
	if staffID != nil {
		active, err := uc.catalogRepo.IsActiveStaff(ctx, *staffID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check staff id=%s: %v", *staffID, err)
			return nil, uc.fail(fmt.Errorf("%w: failed to check staff: %v", ErrInternal, err))
		}
		if !active {
			uc.logger.Warn("CreateReservation: staff id=%s not found or inactive", *staffID)
			return nil, ErrStaffNotAvailable
		}
	}

	var result *domain.Reservation

	write := func(txCtx context.Context) error {
		// 4.1. Клиент: по явному ID или upsert по LINE профилю
		customer, err := uc.resolveCustomer(txCtx, req)
		if err != nil {
			return err
		}

		// 4.2. Проверка конфликта
		exists, err := uc.reservationRepo.ExistsConflict(txCtx, domain.ConflictKey{
			ReservedAt: req.ReservedAt,
			UserID:     customer.ID,
			StaffID:    staffID,
		})
		if err != nil {
			return err
		}
		if exists {
			uc.logger.Warn("CreateReservation: user=%s already has a reservation at %s", customer.ID, req.ReservedAt)
			return ErrConflict
		}

		// 4.3. Заголовок бронирования
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ID:         uc.newID(),
			UserID:     customer.ID,
			StaffID:    staffID,
			ReservedAt: req.ReservedAt,
			Status:     status,
		})
		if err != nil {
			return err
		}

		// 4.4. Меню бронирования
		if err := uc.reservationRepo.AddMenus(txCtx, created.ID, menuIDs); err != nil {
			return err
		}

		created.MenuIDs = menuIDs
		result = created
		return nil
	}

	// 4. Запись в сериализуемой транзакции, при сбое сериализации транзакция повторяется
	for attempt := 1; ; attempt++ {
		err = uc.txManager.DoSerializable(ctx, write)
		if err == nil || !isSerializationFailure(err) || attempt >= maxWriteAttempts {
			break
		}
		uc.logger.Warn("CreateReservation: serialization failure, retrying (attempt %d of %d): %v",
			attempt, maxWriteAttempts, err)
	}

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.metrics.IncReservation(outcomeCreated)
	uc.logger.Info("CreateReservation: created reservation id=%s for user=%s", result.ID, result.UserID)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		StaffID:       result.StaffID,
		ReservedAt:    result.ReservedAt,
		Status:        string(result.Status),
		MenuIDs:       result.MenuIDs,
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// resolveCustomer возвращает клиента бронирования.
// Явный ID только ищется, LINE профиль создает клиента или обновляет его имя и аватар.
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (*domain.Customer, error) {
	if req.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID)
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateReservation: customer id=%s not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get customer id=%s: %v", req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
		}
		return customer, nil
	}

	customer, err := uc.customerRepo.Upsert(ctx, &domain.Customer{
		ID:         uc.newID(),
		LineUserID: req.Identity.LineUserID,
		Name:       displayName(req.Identity.DisplayName),
		PictureURL: req.Identity.PictureURL,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to upsert customer %s: %v", req.Identity.LineUserID, err)
		return nil, fmt.Errorf("%w: failed to upsert customer: %w", ErrInternal, err)
	}
	return customer, nil
}

// mapTxError переводит ошибку транзакции в ошибку use case.
// Конфликтом считается только совпадающее активное бронирование: проверка или уникальный индекс.
// Сбой сериализации после всех попыток является внутренней ошибкой.
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, reservationRepo.ErrDuplicateReservation),
		pgerrors.IsUniqueViolation(err):
		uc.logger.Warn("CreateReservation: conflict: %v", err)
		uc.metrics.IncReservation(outcomeConflict)
		return ErrConflict
	case errors.Is(err, ErrCustomerNotFound):
		return err
	case errors.Is(err, reservationRepo.ErrUnknownReference):
		uc.logger.Warn("CreateReservation: unknown reference: %v", err)
		return fmt.Errorf("%w: %v", ErrMenuNotFound, err)
	case isSerializationFailure(err):
		uc.logger.Error("CreateReservation: serialization failure after %d attempts: %v", maxWriteAttempts, err)
		return uc.fail(fmt.Errorf("%w: serialization failure: %v", ErrInternal, err))
	case errors.Is(err, ErrInternal):
		return uc.fail(err)
	default:
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return uc.fail(fmt.Errorf("%w: %v", ErrInternal, err))
	}
}

func isSerializationFailure(err error) bool {
	return errors.Is(err, reservationRepo.ErrConcurrentWrite) || pgerrors.IsSerializationFailure(err)
}

func (uc *UseCase) fail(err error) error {
	uc.metrics.IncReservation(outcomeFailed)
	return err
}

// sumPrices проверяет, что все меню существуют, и возвращает сумму их цен
func sumPrices(menus []domain.Menu, menuIDs []string) (int, error) {
	prices := make(map[string]int, len(menus))
	for _, m := range menus {
		prices[m.ID] = m.Price
	}

	total := 0
	for _, id := range menuIDs {
		price, ok := prices[id]
		if !ok {
			return 0, fmt.Errorf("%w: id=%s", ErrMenuNotFound, id)
		}
		total += price
	}
	return total, nil
}
