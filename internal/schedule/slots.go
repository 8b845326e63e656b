package schedule

import (
	"sort"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// Candidate окна кандидата на бронирование: занятое окно
// [start, start + duration + breakAfter) и окно технического перерыва
// [start - technicalBreak, start) - подготовка перед услугой, которую
// не должен перекрывать хвост предыдущего бронирования
type Candidate struct {
	Occupied  Window
	Technical Window
}

// NewCandidate строит окна кандидата для старта start и тайминга услуги
func NewCandidate(start time.Time, timing domain.ServiceTiming) Candidate {
	return Candidate{
		Occupied: Window{
			Start: start,
			End:   start.Add(time.Duration(timing.OccupiedSpanMinutes()) * time.Minute),
		},
		Technical: Window{
			Start: start.Add(-time.Duration(timing.TechnicalBreakMinutes) * time.Minute),
			End:   start,
		},
	}
}

// BlockedBy проверяет, пересекает ли хотя бы один занятый интервал
// занятое или техническое окно кандидата
//
// Единственная реализация предиката пересечения: и генератор слотов,
// и проверка конфликта при записи вызывают этот метод
func (c Candidate) BlockedBy(busy []Window) bool {
	for _, b := range busy {
		if b.Overlaps(c.Occupied) {
			return true
		}
		if c.Technical.IsValid() && b.Overlaps(c.Technical) {
			return true
		}
	}
	return false
}

// GenerateSlots генерирует свободные слоты внутри рабочих окон
//
// Кандидаты идут от начала каждого рабочего окна с шагом stepMinutes,
// пока занятый интервал кандидата помещается в окно. Кандидат отбрасывается,
// если занят (BlockedBy) или начинается раньше now. Шаг по сетке
// продолжается независимо от того, принят кандидат или нет
func GenerateSlots(
	working []Window,
	busy []Window,
	stepMinutes int,
	timing domain.ServiceTiming,
	now time.Time,
) []domain.Slot {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}

	step := time.Duration(stepMinutes) * time.Minute
	occupiedSpan := time.Duration(timing.OccupiedSpanMinutes()) * time.Minute
	duration := time.Duration(timing.DurationMinutes) * time.Minute

	slots := make([]domain.Slot, 0)

	for _, w := range working {
		for start := w.Start; !start.Add(occupiedSpan).After(w.End); start = start.Add(step) {
			if start.Before(now) {
				continue
			}
			if NewCandidate(start, timing).BlockedBy(busy) {
				continue
			}
			slots = append(slots, domain.Slot{
				StartTime: start,
				EndTime:   start.Add(duration),
			})
		}
	}

	// Окна дополнительной работы могут пересекаться с недельным окном,
	// поэтому сортируем и убираем дубликаты стартов
	sortSlots(slots)
	return dedupeSlots(slots)
}

func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}

func dedupeSlots(slots []domain.Slot) []domain.Slot {
	result := slots[:0]
	for i, s := range slots {
		if i > 0 && s.StartTime.Equal(slots[i-1].StartTime) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// BuildDailyAvailability агрегирует статус дня:
// нет рабочих окон - CLOSED, окна есть, но слотов нет - FULLY_BOOKED,
// иначе AVAILABLE со списком слотов
func BuildDailyAvailability(date time.Time, working []Window, slots []domain.Slot) domain.DailyAvailability {
	switch {
	case len(working) == 0:
		return domain.DailyAvailability{Date: date, Status: domain.DayClosed}
	case len(slots) == 0:
		return domain.DailyAvailability{Date: date, Status: domain.DayFullyBooked}
	default:
		return domain.DailyAvailability{Date: date, Status: domain.DayAvailable, Slots: slots}
	}
}
