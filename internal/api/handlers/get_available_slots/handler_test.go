package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	getAvailableSlots "github.com/m04kA/barbershop-reservation/internal/usecase/get_available_slots"
	"github.com/m04kA/barbershop-reservation/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

var jst = time.FixedZone("JST", 9*60*60)

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &MockUseCase{}
	date := time.Date(2024, 6, 5, 0, 0, 0, 0, jst)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool {
		return r.Date.Equal(date) && r.Duration == 90 &&
			len(r.MenuIDs) == 2 && r.MenuIDs[0] == "m1" && r.MenuIDs[1] == "m2"
	})).Return(&getAvailableSlots.Response{
		Date:            date,
		Open:            "08:30",
		Close:           "19:30",
		DurationMinutes: 90,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "08:30", Occupied: false},
			{StartTime: "09:00", Occupied: true},
		},
	}, nil)

	rec := get(NewHandler(uc, jst, logger.Nop()), "/api/v1/availability?date=2024-06-05&menuIds=m1,m2&duration=90")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"date": "2024-06-05",
		"closed": false,
		"open": "08:30",
		"close": "19:30",
		"duration": 90,
		"slots": [{"time":"08:30","occupied":false},{"time":"09:00","occupied":true}]
	}`, rec.Body.String())
}

func TestHandle_BadQuery(t *testing.T) {
	for _, target := range []string{
		"/api/v1/availability",
		"/api/v1/availability?date=06/05/2024",
		"/api/v1/availability?date=2024-06-05&duration=long",
		"/api/v1/availability?date=2024-06-05&duration=-30",
	} {
		t.Run(target, func(t *testing.T) {
			uc := &MockUseCase{}

			rec := get(NewHandler(uc, jst, logger.Nop()), target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rec := get(NewHandler(uc, jst, logger.Nop()), "/api/v1/availability?date=2024-06-05")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
