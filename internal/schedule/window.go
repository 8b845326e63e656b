// Package schedule реализует интервальную арифметику расписаний:
// расчёт рабочих окон салона, занятых интервалов, генерацию слотов
// и проверку конфликтов. Путь чтения (список слотов) и путь записи
// (создание/перенос бронирования) используют один и тот же предикат
// пересечения, чтобы их семантика не расходилась.
package schedule

import (
	"sort"
	"time"
)

// Window полуинтервал абсолютного времени [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow создает окно [start, end)
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// IsValid проверяет, что окно непустое (Start строго раньше End)
func (w Window) IsValid() bool {
	return w.Start.Before(w.End)
}

// Duration возвращает длину окна
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps проверяет пересечение двух окон
// Строгие неравенства: окна, граничащие точка-в-точку, не пересекаются
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Contains проверяет, что окно целиком содержит other
func (w Window) Contains(other Window) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

// Intersect возвращает пересечение окон
// Второе значение false, если пересечение пустое
func (w Window) Intersect(other Window) (Window, bool) {
	start := w.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := w.End
	if other.End.Before(end) {
		end = other.End
	}
	if !start.Before(end) {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// Subtract вычитает other из окна и возвращает остаток: ноль, один или
// два окна. Два окна получаются, когда other лежит строго внутри
func (w Window) Subtract(other Window) []Window {
	overlap, ok := w.Intersect(other)
	if !ok {
		return []Window{w}
	}

	result := make([]Window, 0, 2)
	if w.Start.Before(overlap.Start) {
		result = append(result, Window{Start: w.Start, End: overlap.Start})
	}
	if overlap.End.Before(w.End) {
		result = append(result, Window{Start: overlap.End, End: w.End})
	}
	return result
}

// SubtractAll вычитает из каждого окна списка все окна cuts
// Вычитание коммутативно на непересекающихся вырезах, перекрывающиеся
// вырезы повторно вычитают один и тот же участок без вреда
func SubtractAll(windows []Window, cuts []Window) []Window {
	result := windows
	for _, cut := range cuts {
		next := make([]Window, 0, len(result))
		for _, w := range result {
			next = append(next, w.Subtract(cut)...)
		}
		result = next
	}
	return result
}

// SortWindows сортирует окна по возрастанию начала (in place)
func SortWindows(windows []Window) {
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
}
