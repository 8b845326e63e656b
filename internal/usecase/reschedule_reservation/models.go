package reschedule_reservation

import "time"

// Request запрос на перенос бронирования
type Request struct {
	ReservationID int64
	NewStartTime  time.Time
}

// Response бронирование после переноса
// Статус при переносе сохраняется
type Response struct {
	ID        int64
	SalonID   int64
	ServiceID int64
	StartTime time.Time
	EndTime   time.Time
	Status    string

	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	ClientName  string
	ClientEmail string
	ClientPhone string

	UpdatedAt time.Time
}
