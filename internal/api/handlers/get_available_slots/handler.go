package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/barbershop-reservation/internal/usecase/get_available_slots"
)

const (
	msgMissingDate  = "日付を指定してください"
	msgInvalidQuery = "日付は YYYY-MM-DD、所要時間は分単位の整数で指定してください"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), menuIds (a,b,c), duration (minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, query.Get("menuIds"), query.Get("duration"), h.location)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /availability - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved: date=%s, closed=%t, slots_count=%d",
		dateStr, result.Closed, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
