package schedules

import (
	"context"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// SalonRepository интерфейс репозитория салонов и расписаний
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	ListOpenHours(ctx context.Context, salonID int64) ([]domain.OpenHours, error)
	ListOverrides(ctx context.Context, salonID int64) ([]domain.ScheduleOverride, error)
	ReplaceOpenHours(ctx context.Context, salonID int64, hours []domain.OpenHours) error
	ReplaceOverrides(ctx context.Context, salonID int64, overrides []domain.ScheduleOverride) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator интерфейс инвалидации кеша доступности
type AvailabilityInvalidator interface {
	InvalidateSalon(ctx context.Context, salonID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
