package schedule

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// BusyWindow возвращает занятый интервал бронирования с учётом пауз:
// [start - technicalBreak, start + duration + breakAfterService)
// Технический перерыв перед услугой и пауза после неё считаются занятыми
func BusyWindow(start time.Time, timing domain.ServiceTiming) Window {
	return Window{
		Start: start.Add(-time.Duration(timing.TechnicalBreakMinutes) * time.Minute),
		End:   start.Add(time.Duration(timing.OccupiedSpanMinutes()) * time.Minute),
	}
}

// BusyWindows строит занятые интервалы по списку бронирований
// Отменённые бронирования и бронирование с id excludeID пропускаются
// (excludeID = 0 означает "ничего не исключать")
func BusyWindows(reservations []*domain.Reservation, excludeID int64) []Window {
	busy := make([]Window, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		busy = append(busy, BusyWindow(r.StartTime, r.Timing()))
	}
	return busy
}
