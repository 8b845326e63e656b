package find_available_slots

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// Request запрос на получение календаря доступности
type Request struct {
	SalonID   int64
	ServiceID int64
	StartDate time.Time
	EndDate   time.Time
}

// Response календарь доступности по дням
type Response struct {
	SalonID   int64
	ServiceID int64
	Days      []domain.DailyAvailability
}
