package schedule

import (
	"testing"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// Тайминг из базового сценария: услуга 60 минут, пауза после 15,
// технический перерыв 0
var baseTiming = domain.ServiceTiming{
	DurationMinutes:          60,
	BreakAfterServiceMinutes: 15,
	TechnicalBreakMinutes:    0,
}

var farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func reservationAt(id int64, start time.Time, timing domain.ServiceTiming) *domain.Reservation {
	return &domain.Reservation{
		ID:                       id,
		SalonID:                  1,
		StartTime:                start,
		Status:                   domain.StatusConfirmed,
		DurationMinutes:          timing.DurationMinutes,
		BreakAfterServiceMinutes: timing.BreakAfterServiceMinutes,
		TechnicalBreakMinutes:    timing.TechnicalBreakMinutes,
	}
}

func TestGenerateSlotsEmptyDay(t *testing.T) {
	// Понедельник 09:00-17:00, шаг 30, занятых интервалов нет:
	// старты 09:00..15:30 (старт принимается, пока start+75m <= 17:00),
	// итого 14 слотов
	working := []Window{win(9, 0, 17, 0)}

	slots := GenerateSlots(working, nil, 30, baseTiming, farPast)

	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(at(9, 0)) || !slots[0].EndTime.Equal(at(10, 0)) {
		t.Errorf("first slot = %v-%v, want 09:00-10:00", slots[0].StartTime, slots[0].EndTime)
	}
	last := slots[len(slots)-1]
	if !last.StartTime.Equal(at(15, 30)) {
		t.Errorf("last slot start = %v, want 15:30 (16:00 + 75m would overrun 17:00)", last.StartTime)
	}
}

func TestGenerateSlotsAroundExistingReservation(t *testing.T) {
	// Подтверждённое бронирование в 10:00 занимает 10:00-11:15
	// (60 минут услуги + 15 минут паузы). Блокируются все старты,
	// чьё занятое окно [s, s+75m) пересекает 10:00-11:15:
	// 09:00, 09:30, 10:00, 10:30, 11:00. Первый свободный после - 11:30
	working := []Window{win(9, 0, 17, 0)}
	busy := BusyWindows([]*domain.Reservation{reservationAt(1, at(10, 0), baseTiming)}, 0)

	slots := GenerateSlots(working, busy, 30, baseTiming, farPast)

	blocked := map[string]bool{"09:00": true, "09:30": true, "10:00": true, "10:30": true, "11:00": true}
	for _, s := range slots {
		if blocked[s.StartTime.Format("15:04")] {
			t.Errorf("slot %s must be blocked by the 10:00-11:15 reservation", s.StartTime.Format("15:04"))
		}
	}

	if len(slots) != 9 {
		t.Fatalf("expected 9 remaining slots (11:30..15:30), got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(at(11, 30)) {
		t.Errorf("first free slot = %v, want 11:30", slots[0].StartTime)
	}
}

func TestGenerateSlotsTechnicalBreakLookBack(t *testing.T) {
	// Технический перерыв кандидата [start-15m, start) не должен
	// пересекаться с хвостом предыдущего бронирования
	timing := domain.ServiceTiming{
		DurationMinutes:          60,
		BreakAfterServiceMinutes: 0,
		TechnicalBreakMinutes:    15,
	}
	working := []Window{win(9, 0, 17, 0)}
	// Бронирование 10:00-11:00 без пауз
	busy := []Window{win(10, 0, 11, 0)}

	slots := GenerateSlots(working, busy, 30, timing, farPast)

	for _, s := range slots {
		start := s.StartTime.Format("15:04")
		// 11:00 заблокирован: технический перерыв [10:45, 11:00)
		// пересекает занятое окно
		if start == "11:00" {
			t.Error("11:00 must be blocked: its technical break overlaps the 10:00-11:00 reservation")
		}
	}

	// 11:30 свободен: перерыв [11:15, 11:30) уже после бронирования
	found := false
	for _, s := range slots {
		if s.StartTime.Equal(at(11, 30)) {
			found = true
		}
	}
	if !found {
		t.Error("11:30 must be free, technical break starts after the reservation ends")
	}
}

func TestGenerateSlotsDropsPastSlots(t *testing.T) {
	working := []Window{win(9, 0, 17, 0)}
	now := at(12, 10)

	slots := GenerateSlots(working, nil, 30, baseTiming, now)

	for _, s := range slots {
		if s.StartTime.Before(now) {
			t.Errorf("slot %v is in the past relative to now=%v", s.StartTime, now)
		}
	}
	if len(slots) == 0 {
		t.Fatal("expected afternoon slots to survive")
	}
	if !slots[0].StartTime.Equal(at(12, 30)) {
		t.Errorf("first slot = %v, want 12:30", slots[0].StartTime)
	}
}

func TestGenerateSlotsMultipleWindowsSorted(t *testing.T) {
	// Окно дополнительной работы добавляется после недельного -
	// слоты всё равно должны идти по возрастанию
	working := []Window{win(14, 0, 17, 0), win(9, 0, 11, 0)}

	slots := GenerateSlots(working, nil, 30, baseTiming, farPast)

	for i := 1; i < len(slots); i++ {
		if !slots[i-1].StartTime.Before(slots[i].StartTime) {
			t.Fatalf("slots out of order: %v before %v", slots[i-1].StartTime, slots[i].StartTime)
		}
	}
}

func TestBuildDailyAvailability(t *testing.T) {
	day := monday

	closed := BuildDailyAvailability(day, nil, nil)
	if closed.Status != domain.DayClosed {
		t.Errorf("no working windows: status = %s, want CLOSED", closed.Status)
	}

	fullyBooked := BuildDailyAvailability(day, []Window{win(9, 0, 17, 0)}, nil)
	if fullyBooked.Status != domain.DayFullyBooked {
		t.Errorf("windows without slots: status = %s, want FULLY_BOOKED", fullyBooked.Status)
	}

	available := BuildDailyAvailability(day, []Window{win(9, 0, 17, 0)}, []domain.Slot{{StartTime: at(9, 0), EndTime: at(10, 0)}})
	if available.Status != domain.DayAvailable {
		t.Errorf("windows with slots: status = %s, want AVAILABLE", available.Status)
	}
	if len(available.Slots) != 1 {
		t.Errorf("expected slot list to be preserved")
	}
}

func TestClosedDayIgnoresReservations(t *testing.T) {
	// Статус CLOSED не зависит от данных бронирований
	busy := BusyWindows([]*domain.Reservation{reservationAt(1, at(10, 0), baseTiming)}, 0)
	slots := GenerateSlots(nil, busy, 30, baseTiming, farPast)
	got := BuildDailyAvailability(monday, nil, slots)
	if got.Status != domain.DayClosed {
		t.Errorf("status = %s, want CLOSED regardless of reservations", got.Status)
	}
}
