package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	salonRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/salon"
	"github.com/krasivo-app/SalonBookingService/internal/service/schedules/models"
)

// Service сервис управления расписанием салона
type Service struct {
	salonRepo   SalonRepository
	txManager   TransactionManager
	invalidator AvailabilityInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	salonRepo SalonRepository,
	txManager TransactionManager,
	invalidator AvailabilityInvalidator,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:   salonRepo,
		txManager:   txManager,
		invalidator: invalidator,
		logger:      logger,
	}
}

// GetSchedule получает расписание салона: недельные правила и исключения
func (s *Service) GetSchedule(ctx context.Context, salonID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for salon=%d", salonID)

	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetSchedule: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetSchedule: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	hours, err := s.salonRepo.ListOpenHours(ctx, salonID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get open hours for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	overrides, err := s.salonRepo.ListOverrides(ctx, salonID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get overrides for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(salonID, hours, overrides), nil
}

// UpdateSchedule заменяет расписание салона целиком
// Недельные правила и исключения заменяются атомарно в одной транзакции
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for salon=%d (%d weekly rules, %d overrides)",
		req.SalonID, len(req.Weekly), len(req.Overrides))

	if _, err := s.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("UpdateSchedule: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	hours, err := s.buildOpenHours(req)
	if err != nil {
		s.logger.Warn("UpdateSchedule: weekly rules validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	overrides, err := s.buildOverrides(req)
	if err != nil {
		s.logger.Warn("UpdateSchedule: overrides validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.salonRepo.ReplaceOpenHours(txCtx, req.SalonID, hours); err != nil {
			return fmt.Errorf("%w: UpdateSchedule - replace open hours: %v", ErrInternal, err)
		}
		if err := s.salonRepo.ReplaceOverrides(txCtx, req.SalonID, overrides); err != nil {
			return fmt.Errorf("%w: UpdateSchedule - replace overrides: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: transaction failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	// Новое расписание меняет рабочие окна - кеш доступности устарел
	if s.invalidator != nil {
		if err := s.invalidator.InvalidateSalon(ctx, req.SalonID); err != nil {
			s.logger.Warn("UpdateSchedule: failed to invalidate availability cache: %v", err)
		}
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for salon=%d", req.SalonID)
	return models.FromDomainSchedule(req.SalonID, hours, overrides), nil
}

// buildOpenHours валидирует и конвертирует недельные правила
func (s *Service) buildOpenHours(req *models.UpdateScheduleRequest) ([]domain.OpenHours, error) {
	seen := make(map[domain.Weekday]bool, len(req.Weekly))
	hours := make([]domain.OpenHours, 0, len(req.Weekly))

	for _, rule := range req.Weekly {
		weekday := domain.Weekday(rule.DayOfWeek)
		if !weekday.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, rule.DayOfWeek)
		}
		if seen[weekday] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWeekday, rule.DayOfWeek)
		}
		seen[weekday] = true

		h, err := rule.ToDomainOpenHours(req.SalonID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !h.IsValid() {
			return nil, fmt.Errorf("%w: open must be before close on %s", ErrInvalidTimeRange, rule.DayOfWeek)
		}

		hours = append(hours, h)
	}

	return hours, nil
}

// buildOverrides валидирует и конвертирует исключения расписания
// Исключения не должны пересекаться между собой
func (s *Service) buildOverrides(req *models.UpdateScheduleRequest) ([]domain.ScheduleOverride, error) {
	overrides := make([]domain.ScheduleOverride, 0, len(req.Overrides))

	for _, ov := range req.Overrides {
		if ov.StartTime.IsZero() || ov.EndTime.IsZero() {
			return nil, fmt.Errorf("%w: override start and end are required", ErrInvalidInput)
		}
		if !ov.EndTime.After(ov.StartTime) {
			return nil, fmt.Errorf("%w: override end must be after start", ErrInvalidTimeRange)
		}
		overrides = append(overrides, ov.ToDomainOverride(req.SalonID))
	}

	for i := range overrides {
		for j := i + 1; j < len(overrides); j++ {
			if overrides[i].StartTime.Before(overrides[j].EndTime) && overrides[i].EndTime.After(overrides[j].StartTime) {
				return nil, fmt.Errorf("%w: overrides %d and %d", ErrOverlappingOverrides, i, j)
			}
		}
	}

	return overrides, nil
}
