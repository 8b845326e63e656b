package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	reservationRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/reservation"
	salonRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/salon"
	"github.com/krasivo-app/SalonBookingService/internal/schedule"
	"github.com/krasivo-app/SalonBookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка конфликта и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк дня (FOR UPDATE): два конкурентных
// запроса на одно время не могут пройти проверку одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: salon=%d, service=%d, start=%s",
		req.SalonID, req.ServiceID, req.StartTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.StartTime.Before(now) {
		uc.logger.Warn("CreateReservation: start time %s is in the past", req.StartTime)
		return nil, ErrStartTimeInPast
	}

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateReservation: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateReservation: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.salonRepo.GetServiceByID(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found in salon id=%d", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("CreateReservation: invalid salon timezone %q: %v", salon.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	timing := service.Timing()
	day := schedule.DayBounds(req.StartTime, loc)

	var result *domain.Reservation

	// 5. Выполняем проверку конфликта и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Рабочие окна дня: занятое окно должно помещаться целиком
		hours, err := uc.salonRepo.ListOpenHours(txCtx, req.SalonID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get open hours: %v", err)
			return fmt.Errorf("%w: failed to get open hours: %v", ErrInternal, err)
		}

		overrides, err := uc.salonRepo.ListOverridesInRange(txCtx, req.SalonID, day.Start, day.End)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get schedule overrides: %v", err)
			return fmt.Errorf("%w: failed to get schedule overrides: %v", ErrInternal, err)
		}

		working := schedule.ResolveWorkingWindows(req.StartTime, loc, hours, overrides, day)
		candidate := schedule.NewCandidate(req.StartTime, timing)
		if !fitsWorkingWindows(candidate, working) {
			uc.logger.Warn("CreateReservation: start %s does not fit working windows", req.StartTime)
			return ErrOutsideWorkingHours
		}

		// 5.2. Бронирования вокруг дня с блокировкой (FOR UPDATE).
		// Сутки запаса по краям: занятые окна соседних дней могут
		// пересекать границу
		reservations, err := uc.reservationRepo.ListWithFilter(txCtx, domain.SalonReservationsFilter{
			SalonID:   req.SalonID,
			StartTime: ptr.Ptr(day.Start.AddDate(0, 0, -1)),
			EndTime:   ptr.Ptr(day.End.AddDate(0, 0, 1)),
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.3. Проверяем конфликт тем же предикатом, что и генерация слотов
		if schedule.HasConflict(req.StartTime, timing, reservations, 0) {
			uc.logger.Warn("CreateReservation: slot %s is already occupied", req.StartTime)
			return ErrSlotConflict
		}

		// 5.4. Создаем бронирование с денормализацией данных услуги
		reservation := &domain.Reservation{
			SalonID:   req.SalonID,
			ServiceID: req.ServiceID,
			StartTime: req.StartTime,
			Status:    domain.StatusPending,

			ServiceName:              service.Name,
			ServicePrice:             service.Price,
			DurationMinutes:          timing.DurationMinutes,
			BreakAfterServiceMinutes: timing.BreakAfterServiceMinutes,
			TechnicalBreakMinutes:    timing.TechnicalBreakMinutes,

			ClientName:           req.ClientName,
			ClientEmail:          req.ClientEmail,
			ClientPhone:          req.ClientPhone,
			ClientNotes:          req.ClientNotes,
			PromotionID:          req.PromotionID,
			MarketingConsent:     req.MarketingConsent,
			NotificationsConsent: req.NotificationsConsent,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Страховка на уровне схемы: exclusion constraint тоже
			// означает конфликт слота
			if errors.Is(err, reservationRepo.ErrSlotOccupied) {
				uc.logger.Warn("CreateReservation: exclusion constraint rejected slot %s", req.StartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 6. Сбрасываем кеш доступности салона
	if uc.invalidator != nil {
		if err := uc.invalidator.InvalidateSalon(ctx, req.SalonID); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate availability cache: %v", err)
		}
	}

	return toResponse(result), nil
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

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:        r.ID,
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime(),
		Status:    string(r.Status),

		ServiceName:              r.ServiceName,
		ServicePrice:             r.ServicePrice,
		DurationMinutes:          r.DurationMinutes,
		BreakAfterServiceMinutes: r.BreakAfterServiceMinutes,
		TechnicalBreakMinutes:    r.TechnicalBreakMinutes,

		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ClientNotes: r.ClientNotes,

		PromotionID:          r.PromotionID,
		MarketingConsent:     r.MarketingConsent,
		NotificationsConsent: r.NotificationsConsent,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
