package domain

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/pkg/types"
)

// Weekday represents a day of week in salon schedules
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Weekdays lists all weekdays in schedule order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayFromTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayFromTime converts time.Weekday to the schedule weekday code
func WeekdayFromTime(wd time.Weekday) Weekday {
	return weekdayFromTime[wd]
}

// IsValid reports whether the weekday code is one of MON..SUN
func (w Weekday) IsValid() bool {
	for _, known := range Weekdays {
		if w == known {
			return true
		}
	}
	return false
}

// Salon represents a salon in the system
// All schedule computations for a salon happen in its configured timezone
type Salon struct {
	ID              int64
	Name            string
	Timezone        string // IANA timezone, e.g. "Europe/Moscow"
	SlotStepMinutes int    // granularity at which candidate slots are offered
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Location resolves the salon's IANA timezone
func (s *Salon) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// OpenHours is a recurring weekly rule: the salon is open on DayOfWeek
// between Open and Close (local wall-clock, within a single calendar day).
// At most one row per weekday per salon, enforced by the schedule CRUD layer.
type OpenHours struct {
	ID        int64
	SalonID   int64
	DayOfWeek Weekday
	Open      types.TimeString
	Close     types.TimeString
}

// IsValid reports whether the row describes a usable interval (open < close).
// Rows with open >= close are defensively ignored by the resolver.
func (o *OpenHours) IsValid() bool {
	return o.DayOfWeek.IsValid() && o.Open.IsBefore(o.Close)
}

// ScheduleOverride is a one-off date-ranged exception to the weekly rule.
// IsWorking=false removes working time in [StartTime, EndTime);
// IsWorking=true adds working time in that range regardless of the weekly rule.
// Overrides of one salon must not overlap each other (CRUD boundary invariant).
type ScheduleOverride struct {
	ID        int64
	SalonID   int64
	StartTime time.Time
	EndTime   time.Time
	IsWorking bool
}
