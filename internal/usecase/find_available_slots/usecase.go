package find_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	"github.com/krasivo-app/SalonBookingService/internal/infra/cache"
	salonRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/salon"
	"github.com/krasivo-app/SalonBookingService/internal/schedule"
	"github.com/krasivo-app/SalonBookingService/pkg/ptr"
)

// UseCase use case для получения календаря доступности услуги
type UseCase struct {
	salonRepo       SalonRepository
	reservationRepo ReservationRepository
	cache           AvailabilityCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	reservationRepo ReservationRepository,
	availabilityCache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:       salonRepo,
		reservationRepo: reservationRepo,
		cache:           availabilityCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableSlots: salon=%d, service=%d, range=[%s, %s]",
		req.SalonID, req.ServiceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("FindAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("FindAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.salonRepo.GetServiceByID(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrServiceNotFound) {
			uc.logger.Warn("FindAvailableSlots: service id=%d not found in salon id=%d", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("FindAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Таймзона салона - все дневные границы считаются в ней
	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("FindAvailableSlots: invalid salon timezone %q: %v", salon.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	// Даты запроса календарные, без времени и зоны: берем их Y/M/D
	// как день в таймзоне салона, а не конвертируем UTC-момент.
	// Для салона с отрицательным смещением UTC-полночь попадает
	// на предыдущий местный день
	rangeStart := salonDate(req.StartDate, loc)
	rangeEnd := salonDate(req.EndDate, loc).AddDate(0, 0, 1)
	rangeBounds := schedule.Window{Start: rangeStart, End: rangeEnd}

	// Прошедшая часть диапазона молча обрезается до текущего момента:
	// первый день может начинаться с середины, рабочие окна режутся
	// по границам rangeBounds при разрешении
	if now.After(rangeBounds.Start) {
		rangeBounds.Start = now
	}

	// 6. Данные расписания и бронирований на весь период одним заходом.
	// Бронирования берем с запасом в сутки по краям: занятое окно и
	// технический перерыв могут пересекать границу дня
	hours, err := uc.salonRepo.ListOpenHours(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("FindAvailableSlots: failed to get open hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get open hours: %v", ErrInternal, err)
	}

	overrides, err := uc.salonRepo.ListOverridesInRange(ctx, req.SalonID, rangeStart, rangeEnd)
	if err != nil {
		uc.logger.Error("FindAvailableSlots: failed to get schedule overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule overrides: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.ListWithFilter(ctx, domain.SalonReservationsFilter{
		SalonID:   req.SalonID,
		StartTime: ptr.Ptr(rangeBounds.Start.AddDate(0, 0, -1)),
		EndTime:   ptr.Ptr(rangeEnd.AddDate(0, 0, 1)),
	})
	if err != nil {
		uc.logger.Error("FindAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	busy := schedule.BusyWindows(reservations, 0)
	timing := service.Timing()

	generation := uc.cacheGeneration(ctx, req.SalonID)
	today := schedule.DayBounds(now, loc).Start

	// 7. Считаем доступность по каждому дню периода
	// Полностью прошедшие дни в выдачу не попадают
	loopStart := rangeStart
	if today.After(loopStart) {
		loopStart = today
	}

	days := make([]domain.DailyAvailability, 0)
	for date := loopStart; date.Before(rangeEnd); date = date.AddDate(0, 0, 1) {
		dateKey := date.Format(domain.DateFormat)

		// Сегодняшний день зависит от текущего времени, его не кешируем
		cacheable := !date.Equal(today)

		if cacheable {
			if cached := uc.cachedDay(ctx, req.SalonID, req.ServiceID, generation, dateKey); cached != nil {
				days = append(days, *cached)
				continue
			}
		}

		working := schedule.ResolveWorkingWindows(date, loc, hours, overrides, rangeBounds)
		slots := schedule.GenerateSlots(working, busy, salon.SlotStepMinutes, timing, now)
		day := schedule.BuildDailyAvailability(date, working, slots)
		days = append(days, day)

		if cacheable {
			uc.storeDay(ctx, req.SalonID, req.ServiceID, generation, dateKey, &day)
		}
	}

	uc.logger.Info("FindAvailableSlots: built %d days for salon=%d, service=%d",
		len(days), req.SalonID, req.ServiceID)

	return &Response{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Days:      days,
	}, nil
}

// salonDate интерпретирует календарную дату запроса (Y/M/D) как полночь
// в таймзоне салона
func salonDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// cacheGeneration получает поколение кеша салона
// Недоступность Redis не должна ломать выдачу слотов
func (uc *UseCase) cacheGeneration(ctx context.Context, salonID int64) int64 {
	if uc.cache == nil {
		return 0
	}
	generation, err := uc.cache.Generation(ctx, salonID)
	if err != nil {
		uc.logger.Warn("FindAvailableSlots: cache generation unavailable: %v", err)
		return -1
	}
	return generation
}

func (uc *UseCase) cachedDay(ctx context.Context, salonID, serviceID, generation int64, date string) *domain.DailyAvailability {
	if uc.cache == nil || generation < 0 {
		return nil
	}
	day, err := uc.cache.GetDay(ctx, salonID, serviceID, generation, date)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("FindAvailableSlots: cache read failed for %s: %v", date, err)
		}
		return nil
	}
	return day
}

func (uc *UseCase) storeDay(ctx context.Context, salonID, serviceID, generation int64, date string, day *domain.DailyAvailability) {
	if uc.cache == nil || generation < 0 {
		return
	}
	if err := uc.cache.SetDay(ctx, salonID, serviceID, generation, date, day); err != nil {
		uc.logger.Warn("FindAvailableSlots: cache write failed for %s: %v", date, err)
	}
}
