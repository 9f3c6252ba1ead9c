package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	customerRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/reservation"
	"github.com/m04kA/barbershop-reservation/internal/service/reservations/models"
)

// Service сервис для чтения бронирований и смены их статуса
type Service struct {
	reservationRepo ReservationRepository
	customerRepo    CustomerRepository
	txManager       TransactionManager
	policy          domain.TransitionPolicy
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// policy == nil означает разрешение любых переходов между известными статусами.
func NewService(
	reservationRepo ReservationRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	policy domain.TransitionPolicy,
	logger Logger,
) *Service {
	if policy == nil {
		policy = domain.PermissiveTransitions{}
	}
	return &Service{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		policy:          policy,
		logger:          logger,
	}
}

// List возвращает бронирования, видимые вызывающему, по возрастанию времени.
// Администратор видит все, клиент только свои. Без identity возвращаются все.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	filter := domain.ReservationFilter{}

	if req.Identity != nil {
		s.logger.Info("List: fetching reservations for line_user=%s", req.Identity.LineUserID)

		caller, err := s.customerRepo.GetByLineUserID(ctx, req.Identity.LineUserID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				// Клиент еще ни разу не бронировал
				s.logger.Info("List: line_user=%s has no customer record", req.Identity.LineUserID)
				return models.FromDomainReservationList(nil), nil
			}
			s.logger.Error("List: failed to get customer line_user=%s: %v", req.Identity.LineUserID, err)
			return nil, fmt.Errorf("%w: List - customer repository error: %v", ErrInternal, err)
		}

		if !caller.IsAdmin() {
			filter.UserID = &caller.ID
		}
	} else {
		s.logger.Info("List: fetching all reservations (anonymous)")
	}

	// Заголовки и их меню читаются из одного снимка
	var reservations []*domain.Reservation
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservations, err = s.reservationRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus меняет статус бронирования.
// Порядок проверок: входные данные, существование, права владельца или администратора, статус, политика переходов.
func (s *Service) UpdateStatus(ctx context.Context, reservationID string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%s to status=%s by line_user=%s",
		reservationID, req.Status, req.Identity.LineUserID)

	if _, err := uuid.Parse(reservationID); err != nil {
		return nil, fmt.Errorf("%w: invalid reservation id", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Status) == "" {
		return nil, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	if req.Identity.LineUserID == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrInvalidInput)
	}

	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("UpdateStatus: reservation id=%s not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", reservationID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if err := s.checkAccess(txCtx, reservation, req.Identity); err != nil {
			return err
		}

		target := domain.ReservationStatus(req.Status)
		if !target.IsValid() {
			s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%s", req.Status, reservationID)
			return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
		}

		if !s.policy.Allowed(reservation.Status, target) {
			s.logger.Warn("UpdateStatus: %s policy forbids %s -> %s for reservation id=%s",
				s.policy.Name(), reservation.Status, target, reservationID)
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, reservation.Status, target)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, target); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			if errors.Is(err, reservationRepo.ErrDuplicateReservation) {
				// Возврат в reserved занятого времени
				return fmt.Errorf("%w: slot already reserved", ErrTransitionNotAllowed)
			}
			s.logger.Error("UpdateStatus: failed to update reservation id=%s: %v", reservationID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		reservation.Status = target
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: reservation id=%s is now %s", reservationID, result.Status)
	return models.FromDomainReservation(result), nil
}

// checkAccess разрешает действие владельцу бронирования или администратору
func (s *Service) checkAccess(ctx context.Context, reservation *domain.Reservation, identity domain.Identity) error {
	caller, err := s.customerRepo.GetByLineUserID(ctx, identity.LineUserID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("UpdateStatus: unknown caller line_user=%s", identity.LineUserID)
			return ErrAccessDenied
		}
		s.logger.Error("UpdateStatus: failed to get caller line_user=%s: %v", identity.LineUserID, err)
		return fmt.Errorf("%w: customer repository error: %v", ErrInternal, err)
	}

	if caller.IsAdmin() || reservation.IsOwnedBy(caller.ID) {
		return nil
	}

	s.logger.Warn("UpdateStatus: access denied for user=%s to reservation id=%s", caller.ID, reservation.ID)
	return ErrAccessDenied
}
