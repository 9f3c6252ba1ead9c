package get_staffs

import (
	"net/http"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
)

// StaffResponse HTTP response model
type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staffs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListStaff(r.Context())
	if err != nil {
		h.logger.Error("GET /staffs - Failed to list staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	staffs := make([]StaffResponse, 0, len(result.Staffs))
	for _, s := range result.Staffs {
		staffs = append(staffs, StaffResponse{ID: s.ID, Name: s.Name})
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"staffs": staffs})
}
