package schedule

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// DayBounds возвращает окно календарного дня [00:00, 00:00 следующего дня)
// в таймзоне loc. Границы считаются через AddDate, поэтому переходы на
// летнее/зимнее время не ломают длину дня
func DayBounds(date time.Time, loc *time.Location) Window {
	y, m, d := date.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// ResolveWorkingWindows вычисляет рабочие окна салона на один календарный
// день (в таймзоне loc) по недельному расписанию и разовым исключениям.
//
// Порядок применения:
//  1. строка недельного расписания для дня недели даёт базовое окно;
//     строки с open >= close игнорируются как некорректные
//  2. исключения isWorking=false вычитаются из базового окна
//     (окно может расколоться на два, урезаться или исчезнуть)
//  3. исключения isWorking=true добавляются отдельными окнами поверх
//     результата шага 2 - дополнительная работа не вычитается выходными
//     и может открыть салон в день без недельного расписания вовсе
//  4. всё обрезается до bounds - границ запрошенного диапазона,
//     пересечённых с границами дня
//
// Возвращаемые окна отсортированы по возрастанию начала.
func ResolveWorkingWindows(
	date time.Time,
	loc *time.Location,
	hours []domain.OpenHours,
	overrides []domain.ScheduleOverride,
	bounds Window,
) []Window {
	day := DayBounds(date, loc)

	clip, ok := day.Intersect(bounds)
	if !ok {
		return nil
	}

	working := make([]Window, 0, 2)

	if row := openHoursFor(hours, domain.WeekdayFromTime(day.Start.Weekday())); row != nil && row.IsValid() {
		open, errOpen := row.Open.OnDate(day.Start, loc)
		closeAt, errClose := row.Close.OnDate(day.Start, loc)
		if errOpen == nil && errClose == nil && open.Before(closeAt) {
			working = append(working, Window{Start: open, End: closeAt})
		}
	}

	// Выходные вычитаем до добавления дополнительной работы
	dayOffs := make([]Window, 0, len(overrides))
	for _, ov := range overrides {
		if !ov.IsWorking {
			dayOffs = append(dayOffs, Window{Start: ov.StartTime, End: ov.EndTime})
		}
	}
	working = SubtractAll(working, dayOffs)

	for _, ov := range overrides {
		if !ov.IsWorking {
			continue
		}
		if extra, ok := (Window{Start: ov.StartTime, End: ov.EndTime}).Intersect(day); ok {
			working = append(working, extra)
		}
	}

	// Обрезаем до границ запроса (первый/последний день диапазона)
	clipped := make([]Window, 0, len(working))
	for _, w := range working {
		if c, ok := w.Intersect(clip); ok {
			clipped = append(clipped, c)
		}
	}

	SortWindows(clipped)
	return clipped
}

func openHoursFor(hours []domain.OpenHours, weekday domain.Weekday) *domain.OpenHours {
	for i := range hours {
		if hours[i].DayOfWeek == weekday {
			return &hours[i]
		}
	}
	return nil
}
