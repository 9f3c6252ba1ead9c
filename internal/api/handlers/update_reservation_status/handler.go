package update_reservation_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
	msgInvalidInput       = "予約IDまたはステータスが正しくありません"
	msgInvalidStatus      = "ステータスが正しくありません"
	msgUnauthorized       = "ログインが必要です"
	msgForbidden          = "この予約を変更する権限がありません"
	msgNotFound           = "予約が見つかりません"
	msgNotAllowed         = "このステータスには変更できません"
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

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	identity, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), reservationID, req.ToServiceRequest(identity))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid input: id=%s, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: id=%s, status=%s", reservationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/status - Access denied: id=%s, line_user=%s",
				reservationID, identity.LineUserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /reservations/{id}/status - Transition not allowed: id=%s, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgNotAllowed)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to update status: id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status updated: id=%s, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
