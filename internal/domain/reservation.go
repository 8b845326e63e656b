package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a client appointment in a salon.
// EndTime is always derived from StartTime and the denormalized service
// timing, never stored. Reservations are never deleted, only cancelled.
type Reservation struct {
	ID        int64
	SalonID   int64
	ServiceID int64
	StartTime time.Time // absolute instant
	Status    ReservationStatus

	// Denormalized service data: a later edit of the service must not
	// change the footprint of an existing reservation
	ServiceName              string
	ServicePrice             float64
	DurationMinutes          int
	BreakAfterServiceMinutes int
	TechnicalBreakMinutes    int

	ClientName           string
	ClientEmail          string
	ClientPhone          string
	ClientNotes          *string
	PromotionID          *int64
	MarketingConsent     bool
	NotificationsConsent bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Timing returns the reservation's denormalized service timing
func (r *Reservation) Timing() ServiceTiming {
	return ServiceTiming{
		DurationMinutes:          r.DurationMinutes,
		BreakAfterServiceMinutes: r.BreakAfterServiceMinutes,
		TechnicalBreakMinutes:    r.TechnicalBreakMinutes,
	}
}

// EndTime returns the derived appointment end: StartTime + duration
func (r *Reservation) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// IsActive returns true if the reservation still occupies time
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// CanBeConfirmed returns true if the reservation may transition to confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCompleted returns true if the reservation may transition to completed.
// The "now >= startTime" rule is checked by the caller, which owns the clock.
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation may be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation's start time may change
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// SalonReservationsFilter фильтр для выборки бронирований салона
type SalonReservationsFilter struct {
	SalonID         int64              // Обязательный параметр
	StartTime       *time.Time         // Начало периода (включительно), опционально
	EndTime         *time.Time         // Конец периода (исключительно), опционально
	Status          *ReservationStatus // Фильтр по статусу, опционально
	IncludeInactive bool               // Включать ли отменённые бронирования
}
