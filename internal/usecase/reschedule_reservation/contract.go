package reschedule_reservation

import (
	"context"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error)
	UpdateStartTime(ctx context.Context, id int64, startTime time.Time) error
}

// SalonRepository интерфейс репозитория салонов и расписаний
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	ListOpenHours(ctx context.Context, salonID int64) ([]domain.OpenHours, error)
	ListOverridesInRange(ctx context.Context, salonID int64, from, to time.Time) ([]domain.ScheduleOverride, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator интерфейс инвалидации кеша доступности
type AvailabilityInvalidator interface {
	InvalidateSalon(ctx context.Context, salonID int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
