package list_reservations

import (
	"net/http"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/internal/service/reservations/models"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations и GET /api/v1/public/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRequest{}
	if identity, ok := domain.IdentityFromContext(r.Context()); ok {
		req.Identity = &identity
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Listed %d reservations", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
