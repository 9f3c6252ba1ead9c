package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	createReservation "github.com/m04kA/barbershop-reservation/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
	msgInvalidReservedAt  = "予約日時の形式が正しくありません"
	msgInvalidInput       = "必須項目が不足しているか、値が正しくありません"
	msgMenuNotFound       = "選択されたメニューが見つかりません"
	msgStaffNotAvailable  = "選択されたスタッフは予約を受け付けていません"
	msgCustomerNotFound   = "指定されたユーザーが見つかりません"
	msgConflict           = "同じ日時の予約がすでにあります"
)

type Handler struct {
	useCase  CreateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations и POST /api/v1/public/reservations.
// Клиент берется из контекста (ID-токен), без него по user_id из тела запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var identity *domain.Identity
	if fromToken, ok := domain.IdentityFromContext(r.Context()); ok {
		identity = &fromToken
	}

	useCaseReq, err := req.ToUseCaseRequest(identity, h.location)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid reserved_at=%q: %v", req.ReservedAt, err)
		handlers.RespondBadRequest(w, msgInvalidReservedAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %s, error=%v", caller(useCaseReq), err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /reservations - Menu not found: menus=%v", req.MenuIDs)
			handlers.RespondBadRequest(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrStaffNotAvailable):
			h.logger.Warn("POST /reservations - Staff not available: staff_id=%v", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffNotAvailable)

		case errors.Is(err, createReservation.ErrCustomerNotFound):
			h.logger.Warn("POST /reservations - Customer not found: user_id=%s", useCaseReq.CustomerID)
			handlers.RespondBadRequest(w, msgCustomerNotFound)

		case errors.Is(err, createReservation.ErrConflict):
			h.logger.Warn("POST /reservations - Conflict: %s, reserved_at=%s", caller(useCaseReq), req.ReservedAt)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %s, error=%v",
				caller(useCaseReq), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, user_id=%s", result.ID, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func caller(req *createReservation.Request) string {
	if req.CustomerID != "" {
		return "user_id=" + req.CustomerID
	}
	return "line_user=" + req.Identity.LineUserID
}
