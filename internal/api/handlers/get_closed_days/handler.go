package get_closed_days

import (
	"net/http"
	"time"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	getClosedDays "github.com/m04kA/barbershop-reservation/internal/usecase/get_closed_days"
)

const msgInvalidMonth = "月は YYYY-MM 形式で指定してください"

type Handler struct {
	useCase  GetClosedDaysUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetClosedDaysUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/closed-days?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")

	month, err := time.ParseInLocation(domain.MonthFormat, monthStr, h.location)
	if err != nil {
		h.logger.Warn("GET /closed-days - Invalid month=%q: %v", monthStr, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getClosedDays.Request{Month: month})
	if err != nil {
		h.logger.Warn("GET /closed-days - Failed: month=%s, error=%v", monthStr, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
