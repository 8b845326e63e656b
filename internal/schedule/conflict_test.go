package schedule

import (
	"testing"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

func TestHasConflictOverlap(t *testing.T) {
	existing := []*domain.Reservation{reservationAt(1, at(10, 0), baseTiming)}

	// Кандидат 10:30 попадает в занятый интервал 10:00-11:15
	if !HasConflict(at(10, 30), baseTiming, existing, 0) {
		t.Error("candidate inside the busy interval must conflict")
	}

	// Кандидат 11:30 начинается после конца занятого интервала
	if HasConflict(at(11, 30), baseTiming, existing, 0) {
		t.Error("candidate after the busy interval must not conflict")
	}
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	cancelled := reservationAt(1, at(10, 0), baseTiming)
	cancelled.Status = domain.StatusCancelled

	if HasConflict(at(10, 0), baseTiming, []*domain.Reservation{cancelled}, 0) {
		t.Error("cancelled reservation must free its interval immediately")
	}
}

func TestHasConflictSelfExclusion(t *testing.T) {
	// Перенос бронирования на время, конфликтующее только с его же
	// текущим интервалом, должен проходить
	own := reservationAt(42, at(10, 0), baseTiming)

	if HasConflict(at(10, 30), baseTiming, []*domain.Reservation{own}, 42) {
		t.Error("reservation must not conflict with itself when excluded")
	}

	// Без исключения тот же кандидат конфликтует
	if !HasConflict(at(10, 30), baseTiming, []*domain.Reservation{own}, 0) {
		t.Error("without exclusion the same candidate must conflict")
	}
}

func TestHasConflictSharedPredicateWithSlotGenerator(t *testing.T) {
	// Каждый слот, который выдал генератор, обязан проходить проверку
	// конфликта с теми же данными (свойство slot soundness)
	existing := []*domain.Reservation{
		reservationAt(1, at(10, 0), baseTiming),
		reservationAt(2, at(13, 0), baseTiming),
	}
	working := []Window{win(9, 0, 17, 0)}

	slots := GenerateSlots(working, BusyWindows(existing, 0), 30, baseTiming, farPast)
	if len(slots) == 0 {
		t.Fatal("expected at least one free slot")
	}

	for _, s := range slots {
		if HasConflict(s.StartTime, baseTiming, existing, 0) {
			t.Errorf("slot %v returned by the generator fails the write-path conflict check", s.StartTime)
		}
	}
}

func TestHasConflictTechnicalBreakOfExisting(t *testing.T) {
	// Технический перерыв существующего бронирования занимает время
	// перед его стартом
	timing := domain.ServiceTiming{DurationMinutes: 60, TechnicalBreakMinutes: 30}
	existing := []*domain.Reservation{reservationAt(1, at(12, 0), timing)}

	// Кандидат 11:00-12:00 без пауз пересекает перерыв [11:30, 12:00)
	candidate := domain.ServiceTiming{DurationMinutes: 60}
	if !HasConflict(at(11, 0), candidate, existing, 0) {
		t.Error("candidate overlapping the existing reservation's technical break must conflict")
	}

	if HasConflict(at(10, 30), candidate, existing, 0) {
		t.Error("candidate ending at the technical break start must not conflict")
	}
}
