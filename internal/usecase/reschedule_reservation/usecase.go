package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	reservationRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/reservation"
	"github.com/krasivo-app/SalonBookingService/internal/schedule"
	"github.com/krasivo-app/SalonBookingService/pkg/ptr"
)

// UseCase use case для переноса бронирования на новое время
type UseCase struct {
	reservationRepo ReservationRepository
	salonRepo       SalonRepository
	txManager       TransactionManager
	invalidator     AvailabilityInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	salonRepo SalonRepository,
	txManager TransactionManager,
	invalidator AvailabilityInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		salonRepo:       salonRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
// Проверка конфликта на новом времени и перенос выполняются в одной
// сериализуемой транзакции. Собственный занятый интервал бронирования
// исключается из проверки: перенос внутри своего же окна разрешен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: reservation=%d, newStart=%s",
		req.ReservationID, req.NewStartTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.NewStartTime.Before(now) {
		uc.logger.Warn("RescheduleReservation: new start time %s is in the past", req.NewStartTime)
		return nil, ErrStartTimeInPast
	}

	var result *domain.Reservation
	var salonID int64

	// 3. Выполняем перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование и проверяем статус
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if !reservation.CanBeRescheduled() {
			uc.logger.Warn("RescheduleReservation: reservation id=%d in status %q cannot be rescheduled",
				reservation.ID, reservation.Status)
			return ErrInvalidState
		}

		salonID = reservation.SalonID

		// 3.2. Таймзона и рабочие окна дня нового времени
		salon, err := uc.salonRepo.GetByID(txCtx, reservation.SalonID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get salon id=%d: %v", reservation.SalonID, err)
			return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
		}

		loc, err := salon.Location()
		if err != nil {
			uc.logger.Error("RescheduleReservation: invalid salon timezone %q: %v", salon.Timezone, err)
			return fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
		}

		// Тайминг берется из денормализованных полей бронирования,
		// а не из текущей версии услуги
		timing := reservation.Timing()
		day := schedule.DayBounds(req.NewStartTime, loc)

		hours, err := uc.salonRepo.ListOpenHours(txCtx, reservation.SalonID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get open hours: %v", err)
			return fmt.Errorf("%w: failed to get open hours: %v", ErrInternal, err)
		}

		overrides, err := uc.salonRepo.ListOverridesInRange(txCtx, reservation.SalonID, day.Start, day.End)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get schedule overrides: %v", err)
			return fmt.Errorf("%w: failed to get schedule overrides: %v", ErrInternal, err)
		}

		working := schedule.ResolveWorkingWindows(req.NewStartTime, loc, hours, overrides, day)
		candidate := schedule.NewCandidate(req.NewStartTime, timing)
		if !fitsWorkingWindows(candidate, working) {
			uc.logger.Warn("RescheduleReservation: new start %s does not fit working windows", req.NewStartTime)
			return ErrOutsideWorkingHours
		}

		// 3.3. Бронирования вокруг дня с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.ListWithFilter(txCtx, domain.SalonReservationsFilter{
			SalonID:   reservation.SalonID,
			StartTime: ptr.Ptr(day.Start.AddDate(0, 0, -1)),
			EndTime:   ptr.Ptr(day.End.AddDate(0, 0, 1)),
		})
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 3.4. Проверяем конфликт, исключая собственный интервал
		if schedule.HasConflict(req.NewStartTime, timing, reservations, reservation.ID) {
			uc.logger.Warn("RescheduleReservation: slot %s is already occupied", req.NewStartTime)
			return ErrSlotConflict
		}

		// 3.5. Переносим; статус сохраняется
		if err := uc.reservationRepo.UpdateStartTime(txCtx, reservation.ID, req.NewStartTime); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotOccupied) {
				uc.logger.Warn("RescheduleReservation: exclusion constraint rejected slot %s", req.NewStartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleReservation: failed to update start time: %v", err)
			return fmt.Errorf("%w: failed to update start time: %v", ErrInternal, err)
		}

		reservation.StartTime = req.NewStartTime
		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: successfully rescheduled reservation id=%d", result.ID)

	// 4. Сбрасываем кеш доступности салона
	if uc.invalidator != nil {
		if err := uc.invalidator.InvalidateSalon(ctx, salonID); err != nil {
			uc.logger.Warn("RescheduleReservation: failed to invalidate availability cache: %v", err)
		}
	}

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		ServiceID:       result.ServiceID,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime(),
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		DurationMinutes: result.DurationMinutes,
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ClientPhone:     result.ClientPhone,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// fitsWorkingWindows проверяет, что занятое окно кандидата помещается
// целиком в одно из рабочих окон
func fitsWorkingWindows(candidate schedule.Candidate, working []schedule.Window) bool {
	for _, w := range working {
		if w.Contains(candidate.Occupied) {
			return true
		}
	}
	return false
}
