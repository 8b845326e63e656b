package domain

import "time"

// DayStatus describes the availability of a salon on a single date
type DayStatus string

const (
	// DayAvailable - working time exists and at least one free slot survives
	DayAvailable DayStatus = "AVAILABLE"
	// DayFullyBooked - working time exists but no free slot survives
	DayFullyBooked DayStatus = "FULLY_BOOKED"
	// DayClosed - no working time on this date
	DayClosed DayStatus = "CLOSED"
)

// Slot is a candidate appointment: aligned to the salon's step grid,
// fully containable within a working window and free of busy overlap.
// End is the appointment end (start + service duration), without breaks.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// DailyAvailability is the per-date result of a slot query
type DailyAvailability struct {
	Date   time.Time // local midnight in the salon's timezone
	Status DayStatus
	Slots  []Slot // non-empty only when Status is DayAvailable
}
