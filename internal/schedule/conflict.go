package schedule

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// HasConflict проверяет, пересекается ли кандидат (start + тайминг услуги)
// с занятыми интервалами существующих бронирований
//
// excludeID исключает собственное бронирование при переносе времени:
// бронирование не конфликтует само с собой
//
// Вызывается внутри той же транзакции, что и запись бронирования,
// над выборкой бронирований той же формы, что использует путь чтения
func HasConflict(
	start time.Time,
	timing domain.ServiceTiming,
	existing []*domain.Reservation,
	excludeID int64,
) bool {
	return NewCandidate(start, timing).BlockedBy(BusyWindows(existing, excludeID))
}
