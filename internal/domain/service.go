package domain

import "time"

// ServiceTiming describes how much time a service occupies around its start:
// TechnicalBreakMinutes immediately before the appointment (setup/cleaning
// that must not be interrupted), DurationMinutes of the appointment itself
// and BreakAfterServiceMinutes of mandatory buffer after it.
// All three count as occupied time.
type ServiceTiming struct {
	DurationMinutes          int
	BreakAfterServiceMinutes int
	TechnicalBreakMinutes    int
}

// OccupiedSpanMinutes returns the span occupied starting at the appointment
// start: duration plus the trailing break
func (t ServiceTiming) OccupiedSpanMinutes() int {
	return t.DurationMinutes + t.BreakAfterServiceMinutes
}

// Service represents a bookable salon service
type Service struct {
	ID      int64
	SalonID int64
	Name    string
	Price   float64

	DurationMinutes          int
	BreakAfterServiceMinutes int
	TechnicalBreakMinutes    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Timing returns the timing parameters of the service
func (s *Service) Timing() ServiceTiming {
	return ServiceTiming{
		DurationMinutes:          s.DurationMinutes,
		BreakAfterServiceMinutes: s.BreakAfterServiceMinutes,
		TechnicalBreakMinutes:    s.TechnicalBreakMinutes,
	}
}
