package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	reservationRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/reservation"
	"github.com/krasivo-app/SalonBookingService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований
// Переходы статусов: pending -> confirmed -> completed,
// отмена допустима из pending и confirmed. Терминальные статусы
// (completed, cancelled) не меняются
type Service struct {
	reservationRepo ReservationRepository
	invalidator     AvailabilityInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	invalidator AvailabilityInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		invalidator:     invalidator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetSalonReservations получает бронирования салона с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых
func (s *Service) GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSalonReservations: fetching reservations for salon=%d", req.SalonID)

	if req.SalonID <= 0 {
		s.logger.Warn("GetSalonReservations: invalid salonID=%d", req.SalonID)
		return nil, fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		s.logger.Warn("GetSalonReservations: invalid period for salon=%d", req.SalonID)
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonReservations: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonReservations: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonReservations: fetched %d reservations for salon=%d", len(reservations), req.SalonID)
	return models.FromDomainReservationList(reservations), nil
}

// Confirm подтверждает бронирование
// Допустимо только из статуса pending
func (s *Service) Confirm(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Confirm: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Confirm: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeConfirmed() {
		s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", id, reservation.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.updateStatus(ctx, reservation, domain.StatusConfirmed, "Confirm"); err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// Complete завершает бронирование после визита
// Допустимо только из статуса confirmed и не раньше начала визита
func (s *Service) Complete(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Complete: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Complete: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCompleted() {
		s.logger.Warn("Complete: reservation id=%d cannot be completed, status=%s", id, reservation.Status)
		return nil, ErrCannotComplete
	}

	// Завершить визит, который ещё не начался, нельзя
	now := s.timeProvider.Now()
	if now.Before(reservation.StartTime) {
		s.logger.Warn("Complete: reservation id=%d has not started yet (start=%s)", id, reservation.StartTime)
		return nil, fmt.Errorf("%w: reservation has not started yet", ErrCannotComplete)
	}

	if err := s.updateStatus(ctx, reservation, domain.StatusCompleted, "Complete"); err != nil {
		return nil, err
	}

	s.logger.Info("Complete: successfully completed reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// Cancel отменяет бронирование с указанием причины
// Освободившиеся слоты снова попадают в выдачу доступности
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отмена освобождает занятый интервал - кеш доступности устарел
	if s.invalidator != nil {
		if err := s.invalidator.InvalidateSalon(ctx, reservation.SalonID); err != nil {
			s.logger.Warn("Cancel: failed to invalidate availability cache: %v", err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}

func (s *Service) updateStatus(ctx context.Context, reservation *domain.Reservation, status domain.ReservationStatus, op string) error {
	if err := s.reservationRepo.UpdateStatus(ctx, reservation.ID, status); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found during update", op, reservation.ID)
			return ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, reservation.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	reservation.Status = status
	return nil
}
