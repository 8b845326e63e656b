package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reservationWithStatus(status ReservationStatus) *Reservation {
	return &Reservation{
		ID:              1,
		SalonID:         1,
		ServiceID:       1,
		StartTime:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:          status,
		DurationMinutes: 60,
	}
}

func TestReservationLifecycleGuards(t *testing.T) {
	tests := []struct {
		status     ReservationStatus
		confirm    bool
		complete   bool
		cancel     bool
		reschedule bool
	}{
		{StatusPending, true, false, true, true},
		{StatusConfirmed, false, true, true, true},
		{StatusCompleted, false, false, false, false},
		{StatusCancelled, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := reservationWithStatus(tt.status)

			assert.Equal(t, tt.confirm, r.CanBeConfirmed())
			assert.Equal(t, tt.complete, r.CanBeCompleted())
			assert.Equal(t, tt.cancel, r.CanBeCancelled())
			assert.Equal(t, tt.reschedule, r.CanBeRescheduled())
		})
	}
}

func TestReservationIsActive(t *testing.T) {
	assert.True(t, reservationWithStatus(StatusPending).IsActive())
	assert.True(t, reservationWithStatus(StatusConfirmed).IsActive())
	assert.True(t, reservationWithStatus(StatusCompleted).IsActive())
	assert.False(t, reservationWithStatus(StatusCancelled).IsActive())
}

func TestActiveStatusesMatchIsActive(t *testing.T) {
	// Список для SQL-фильтра и предикат занятости должны совпадать
	all := []ReservationStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

	for _, status := range all {
		listed := false
		for _, active := range ActiveStatuses {
			if active == status {
				listed = true
			}
		}
		assert.Equal(t, reservationWithStatus(status).IsActive(), listed, string(status))
	}
}

func TestReservationEndTimeDerived(t *testing.T) {
	r := reservationWithStatus(StatusPending)
	r.BreakAfterServiceMinutes = 15

	// EndTime считается только из длительности услуги, без перерывов
	assert.Equal(t, r.StartTime.Add(60*time.Minute), r.EndTime())
}

func TestReservationTiming(t *testing.T) {
	r := reservationWithStatus(StatusPending)
	r.BreakAfterServiceMinutes = 15
	r.TechnicalBreakMinutes = 10

	timing := r.Timing()
	assert.Equal(t, 60, timing.DurationMinutes)
	assert.Equal(t, 15, timing.BreakAfterServiceMinutes)
	assert.Equal(t, 10, timing.TechnicalBreakMinutes)
	assert.Equal(t, 75, timing.OccupiedSpanMinutes())
}
