package create_reservation

import (
	"time"
)

// Request запрос на создание бронирования
type Request struct {
	SalonID   int64
	ServiceID int64
	StartTime time.Time

	ClientName  string
	ClientEmail string
	ClientPhone string
	ClientNotes *string

	PromotionID          *int64
	MarketingConsent     bool
	NotificationsConsent bool
}

// Response созданное бронирование
type Response struct {
	ID        int64
	SalonID   int64
	ServiceID int64
	StartTime time.Time
	EndTime   time.Time
	Status    string

	ServiceName              string
	ServicePrice             float64
	DurationMinutes          int
	BreakAfterServiceMinutes int
	TechnicalBreakMinutes    int

	ClientName  string
	ClientEmail string
	ClientPhone string
	ClientNotes *string

	PromotionID          *int64
	MarketingConsent     bool
	NotificationsConsent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
