package find_available_slots

import (
	"context"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// SalonRepository интерфейс репозитория салонов и расписаний
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	GetServiceByID(ctx context.Context, salonID, serviceID int64) (*domain.Service, error)
	ListOpenHours(ctx context.Context, salonID int64) ([]domain.OpenHours, error)
	// ListOverridesInRange получает исключения расписания, пересекающие период [from, to)
	ListOverridesInRange(ctx context.Context, salonID int64, from, to time.Time) ([]domain.ScheduleOverride, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListWithFilter(ctx context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error)
}

// AvailabilityCache интерфейс кеша дневной доступности
type AvailabilityCache interface {
	Generation(ctx context.Context, salonID int64) (int64, error)
	GetDay(ctx context.Context, salonID, serviceID, generation int64, date string) (*domain.DailyAvailability, error)
	SetDay(ctx context.Context, salonID, serviceID, generation int64, date string, day *domain.DailyAvailability) error
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
