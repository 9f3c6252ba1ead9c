package get_menus

import (
	"net/http"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
)

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

// Handle GET /api/v1/menus
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMenus(r.Context())
	if err != nil {
		h.logger.Error("GET /menus - Failed to get menus: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
