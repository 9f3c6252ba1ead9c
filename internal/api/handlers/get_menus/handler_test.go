package get_menus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/barbershop-reservation/internal/service/catalog/models"
	"github.com/m04kA/barbershop-reservation/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetMenus(ctx context.Context) (*models.CatalogResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &MockService{}
	svc.On("GetMenus", mock.Anything).Return(&models.CatalogResponse{Groups: []models.MenuGroup{
		{Category: "cut", Label: "カット", Menus: []models.MenuResponse{
			{ID: "m1", Name: "カットのみ", Price: 4000, DurationMinutes: 30, Category: "cut"},
		}},
		{Category: "perm", Label: "パーマ", Menus: []models.MenuResponse{}},
	}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"groups":[
		{"category":"cut","label":"カット","menus":[
			{"id":"m1","name":"カットのみ","description":null,"price":4000,"duration":30,"image":null,"category":"cut"}
		]},
		{"category":"perm","label":"パーマ","menus":[]}
	]}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	svc := &MockService{}
	svc.On("GetMenus", mock.Anything).Return(nil, errors.New("db down"))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
