package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	customerRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/customer"
	"github.com/m04kA/barbershop-reservation/pkg/logger"
	"github.com/m04kA/barbershop-reservation/pkg/ptr"
	"github.com/m04kA/barbershop-reservation/pkg/txmanager"
)

const (
	menuCut   = "0b6f1a64-3c1e-4d0c-9a57-9d0f6d1e0001"
	menuColor = "0b6f1a64-3c1e-4d0c-9a57-9d0f6d1e0002"
	staffID   = "5d7e0c1a-8b2f-4f3e-a1c4-000000000001"
	userID    = "c0ffee00-0000-4000-8000-000000000001"
)

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) ExistsConflict(ctx context.Context, key domain.ConflictKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, reservation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) AddMenus(ctx context.Context, reservationID string, menuIDs []string) error {
	args := m.Called(ctx, reservationID, menuIDs)
	return args.Error(0)
}

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Menu), args.Error(1)
}

func (m *MockCatalogRepo) IsActiveStaff(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncReservation(outcome string) {
	m.Called(outcome)
}

// fakeTxManager выполняет функцию без транзакции и запоминает ее результат.
// commitErrs по очереди возвращаются как ошибки фиксации успешных попыток.
type fakeTxManager struct {
	calls      int
	lastErr    error
	commitErrs []error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	f.lastErr = fn(ctx)
	if f.lastErr != nil {
		return f.lastErr
	}
	if len(f.commitErrs) > 0 {
		err := f.commitErrs[0]
		f.commitErrs = f.commitErrs[1:]
		return err
	}
	return nil
}

func serializationFailure() error {
	return fmt.Errorf("%w: %w", txmanager.ErrCommit, &pq.Error{Code: "40001"})
}

type fixture struct {
	reservations *MockReservationRepo
	customers    *MockCustomerRepo
	catalog      *MockCatalogRepo
	metrics      *MockMetrics
	tx           *fakeTxManager
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &MockReservationRepo{},
		customers:    &MockCustomerRepo{},
		catalog:      &MockCatalogRepo{},
		metrics:      &MockMetrics{},
		tx:           &fakeTxManager{},
	}
	f.uc = NewUseCase(f.reservations, f.customers, f.catalog, f.tx, f.metrics, logger.Nop())

	ids := []string{"reservation-id", "customer-id"}
	f.uc.newID = func() string {
		id := ids[len(ids)-1]
		if len(ids) > 1 {
			ids = ids[:len(ids)-1]
		}
		return id
	}
	return f
}

func menus() []domain.Menu {
	return []domain.Menu{
		{ID: menuCut, Name: "カットのみ", Price: 4000, DurationMinutes: 30, Category: domain.CategoryCut},
		{ID: menuColor, Name: "カラー", Price: 6000, DurationMinutes: 45, Category: domain.CategoryColor},
	}
}

func reservedAt() time.Time {
	return time.Date(2024, 6, 5, 1, 0, 0, 0, time.UTC)
}

func validRequest() *Request {
	return &Request{
		Identity:   domain.Identity{LineUserID: "U123", DisplayName: "山田太郎"},
		MenuIDs:    []string{menuCut, menuColor},
		ReservedAt: reservedAt(),
	}
}

func (f *fixture) expectCustomer() {
	f.customers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.LineUserID == "U123" && c.Name == "山田太郎" && c.ID == "customer-id"
	})).Return(&domain.Customer{ID: userID, LineUserID: "U123", Role: domain.RoleCustomer}, nil)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.expectCustomer()
	f.reservations.On("ExistsConflict", mock.Anything, domain.ConflictKey{
		ReservedAt: reservedAt(),
		UserID:     userID,
	}).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.ID == "reservation-id" && r.UserID == userID && r.StaffID == nil && r.Status == domain.StatusReserved
	})).Return(&domain.Reservation{
		ID:         "reservation-id",
		UserID:     userID,
		ReservedAt: reservedAt(),
		Status:     domain.StatusReserved,
	}, nil)
	f.reservations.On("AddMenus", mock.Anything, "reservation-id", []string{menuCut, menuColor}).Return(nil)
	f.metrics.On("IncReservation", outcomeCreated).Return()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "reservation-id", resp.ID)
	assert.Equal(t, "reserved", resp.Status)
	assert.Equal(t, []string{menuCut, menuColor}, resp.MenuIDs)
	assert.Equal(t, 10000, resp.TotalPrice)
	assert.Equal(t, 75, resp.TotalDuration)
	assert.Nil(t, resp.StaffID)
	assert.Equal(t, 1, f.tx.calls)

	f.catalog.AssertNotCalled(t, "IsActiveStaff", mock.Anything, mock.Anything)
	f.reservations.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExecute_Conflict(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.expectCustomer()
	f.reservations.On("ExistsConflict", mock.Anything, mock.Anything).Return(true, nil)
	f.metrics.On("IncReservation", outcomeConflict).Return()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrConflict)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.reservations.AssertNotCalled(t, "AddMenus", mock.Anything, mock.Anything, mock.Anything)
	f.metrics.AssertExpectations(t)
}

func TestExecute_UniqueViolationIsConflict(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.expectCustomer()
	f.reservations.On("ExistsConflict", mock.Anything, mock.Anything).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(nil, &pq.Error{Code: "23505"})
	f.metrics.On("IncReservation", outcomeConflict).Return()

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrConflict)
}

func (f *fixture) expectSuccessfulWrite() {
	f.reservations.On("ExistsConflict", mock.Anything, mock.Anything).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{
		ID:         "reservation-id",
		UserID:     userID,
		ReservedAt: reservedAt(),
		Status:     domain.StatusReserved,
	}, nil)
	f.reservations.On("AddMenus", mock.Anything, "reservation-id", mock.Anything).Return(nil)
}

func TestExecute_SerializationFailureRetried(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.customers.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Customer{ID: userID, LineUserID: "U123"}, nil)
	f.expectSuccessfulWrite()
	f.tx.commitErrs = []error{serializationFailure()}
	f.metrics.On("IncReservation", outcomeCreated).Return()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "reservation-id", resp.ID)
	assert.Equal(t, 2, f.tx.calls)
	f.metrics.AssertExpectations(t)
}

func TestExecute_SerializationFailureIsNotConflict(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.customers.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Customer{ID: userID, LineUserID: "U123"}, nil)
	f.expectSuccessfulWrite()
	f.tx.commitErrs = []error{serializationFailure(), serializationFailure(), serializationFailure()}
	f.metrics.On("IncReservation", outcomeFailed).Return()

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxWriteAttempts, f.tx.calls)
	f.metrics.AssertExpectations(t)
}

func TestExecute_SerializationFailureInUpsertRetried(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.customers.On("Upsert", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Upsert - execute upsert: %w", customerRepo.ErrExecQuery, &pq.Error{Code: "40001"})).Once()
	f.customers.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Customer{ID: userID, LineUserID: "U123"}, nil).Once()
	f.expectSuccessfulWrite()
	f.metrics.On("IncReservation", outcomeCreated).Return()

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, f.tx.calls)
	f.customers.AssertExpectations(t)
}

func TestExecute_ExplicitCustomerSkipsUpsert(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.customers.On("GetByID", mock.Anything, userID).
		Return(&domain.Customer{ID: userID, LineUserID: "U-existing", Role: domain.RoleCustomer}, nil)
	f.reservations.On("ExistsConflict", mock.Anything, mock.MatchedBy(func(k domain.ConflictKey) bool {
		return k.UserID == userID
	})).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.UserID == userID
	})).Return(&domain.Reservation{ID: "reservation-id", UserID: userID, Status: domain.StatusReserved}, nil)
	f.reservations.On("AddMenus", mock.Anything, "reservation-id", mock.Anything).Return(nil)
	f.metrics.On("IncReservation", outcomeCreated).Return()

	req := validRequest()
	req.Identity = domain.Identity{}
	req.CustomerID = userID

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	f.customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestExecute_ExplicitCustomerNotFound(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.customers.On("GetByID", mock.Anything, userID).Return(nil, customerRepo.ErrCustomerNotFound)

	req := validRequest()
	req.Identity = domain.Identity{}
	req.CustomerID = userID

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	f.customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_AddMenusFailureFailsTransaction(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.expectCustomer()
	f.reservations.On("ExistsConflict", mock.Anything, mock.Anything).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{ID: "reservation-id"}, nil)
	f.reservations.On("AddMenus", mock.Anything, "reservation-id", mock.Anything).Return(errors.New("insert failed"))
	f.metrics.On("IncReservation", outcomeFailed).Return()

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	// Ошибка возвращается из функции транзакции, поэтому заголовок откатывается вместе с меню
	assert.Error(t, f.tx.lastErr)
}

func TestExecute_StaffSentinelMeansNoPreference(t *testing.T) {
	for _, sentinel := range []string{"", "none", "null"} {
		t.Run(sentinel, func(t *testing.T) {
			f := newFixture()
			f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
			f.expectCustomer()
			f.reservations.On("ExistsConflict", mock.Anything, mock.MatchedBy(func(k domain.ConflictKey) bool {
				return k.StaffID == nil
			})).Return(true, nil)
			f.metrics.On("IncReservation", outcomeConflict).Return()

			req := validRequest()
			req.StaffID = ptr.Ptr(sentinel)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrConflict)
			f.catalog.AssertNotCalled(t, "IsActiveStaff", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_InactiveStaff(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus(), nil)
	f.catalog.On("IsActiveStaff", mock.Anything, staffID).Return(false, nil)

	req := validRequest()
	req.StaffID = ptr.Ptr(staffID)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrStaffNotAvailable)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecute_UnknownMenu(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMenus", mock.Anything).Return(menus()[:1], nil)

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrMenuNotFound)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"missing user", func(r *Request) { r.Identity.LineUserID = " " }},
		{"both identities", func(r *Request) { r.CustomerID = userID }},
		{"malformed customer id", func(r *Request) { r.Identity = domain.Identity{}; r.CustomerID = "42" }},
		{"no menus", func(r *Request) { r.MenuIDs = nil }},
		{"malformed menu id", func(r *Request) { r.MenuIDs = []string{"cut"} }},
		{"missing reserved_at", func(r *Request) { r.ReservedAt = time.Time{} }},
		{"unknown status", func(r *Request) { r.Status = ptr.Ptr(domain.ReservationStatus("done")) }},
		{"malformed staff id", func(r *Request) { r.StaffID = ptr.Ptr("staff-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			f.catalog.AssertNotCalled(t, "ListMenus", mock.Anything)
		})
	}
}

func TestUniqueMenuIDs(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, uniqueMenuIDs([]string{"b", "a", "b"}))
}

func TestDisplayName(t *testing.T) {
	long := make([]rune, domain.MaxDisplayNameLength+5)
	for i := range long {
		long[i] = '髪'
	}

	assert.Equal(t, "太郎", displayName("  太郎 "))
	assert.Len(t, []rune(displayName(string(long))), domain.MaxDisplayNameLength)
}
