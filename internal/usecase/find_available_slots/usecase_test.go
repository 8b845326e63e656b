package find_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	"github.com/krasivo-app/SalonBookingService/internal/infra/cache"
	salonRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/salon"
	"github.com/krasivo-app/SalonBookingService/pkg/types"
)

// Воскресенье 2026-03-01, понедельник 2026-03-02; салон в UTC
var (
	testNow    = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mondayDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sundayDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

type fakeSalonRepo struct {
	salon     *domain.Salon
	service   *domain.Service
	hours     []domain.OpenHours
	overrides []domain.ScheduleOverride
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, salonRepo.ErrSalonNotFound
	}
	return f.salon, nil
}

func (f *fakeSalonRepo) GetServiceByID(_ context.Context, salonID, serviceID int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != serviceID || f.service.SalonID != salonID {
		return nil, salonRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeSalonRepo) ListOpenHours(_ context.Context, _ int64) ([]domain.OpenHours, error) {
	return f.hours, nil
}

func (f *fakeSalonRepo) ListOverridesInRange(_ context.Context, _ int64, _, _ time.Time) ([]domain.ScheduleOverride, error) {
	return f.overrides, nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListWithFilter(_ context.Context, _ domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeCache struct {
	generation int64
	days       map[string]*domain.DailyAvailability
	gets       int
	sets       int
}

func newFakeCache() *fakeCache {
	return &fakeCache{days: map[string]*domain.DailyAvailability{}}
}

func (f *fakeCache) Generation(_ context.Context, _ int64) (int64, error) {
	return f.generation, nil
}

func (f *fakeCache) key(salonID, serviceID, generation int64, date string) string {
	return fmt.Sprintf("%d:%d:%d:%s", salonID, serviceID, generation, date)
}

func (f *fakeCache) GetDay(_ context.Context, salonID, serviceID, generation int64, date string) (*domain.DailyAvailability, error) {
	f.gets++
	day, ok := f.days[f.key(salonID, serviceID, generation, date)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return day, nil
}

func (f *fakeCache) SetDay(_ context.Context, salonID, serviceID, generation int64, date string, day *domain.DailyAvailability) error {
	f.sets++
	f.days[f.key(salonID, serviceID, generation, date)] = day
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTimeString(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

// Салон работает только по понедельникам 09:00-11:00, шаг 30 минут,
// услуга на 60 минут без перерывов: слоты 09:00, 09:30, 10:00
func testSalonRepo(t *testing.T) *fakeSalonRepo {
	return &fakeSalonRepo{
		salon:   &domain.Salon{ID: 1, Name: "Krasivo", Timezone: "UTC", SlotStepMinutes: 30},
		service: &domain.Service{ID: 7, SalonID: 1, Name: "Haircut", DurationMinutes: 60},
		hours: []domain.OpenHours{
			{SalonID: 1, DayOfWeek: domain.Monday, Open: mustTimeString(t, "09:00"), Close: mustTimeString(t, "11:00")},
		},
	}
}

func newTestUseCase(salons SalonRepository, reservations ReservationRepository, c AvailabilityCache) *UseCase {
	uc := NewUseCase(salons, reservations, c, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func slotStarts(day domain.DailyAvailability) []string {
	starts := make([]string, 0, len(day.Slots))
	for _, s := range day.Slots {
		starts = append(starts, s.StartTime.UTC().Format("15:04"))
	}
	return starts
}

func TestFindAvailableSlotsWorkingDay(t *testing.T) {
	uc := newTestUseCase(testSalonRepo(t), &fakeReservationRepo{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.Equal(t, domain.DayAvailable, day.Status)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(day))

	// EndTime слота - конец услуги без перерывов
	assert.Equal(t, day.Slots[0].StartTime.Add(60*time.Minute), day.Slots[0].EndTime)
}

func TestFindAvailableSlotsClosedDay(t *testing.T) {
	uc := newTestUseCase(testSalonRepo(t), &fakeReservationRepo{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: sundayDate, EndDate: sundayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.Equal(t, domain.DayClosed, resp.Days[0].Status)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestFindAvailableSlotsBusyIntervalRemovesSlots(t *testing.T) {
	// Бронирование 09:30-10:30 пересекается со всеми тремя слотами:
	// даже слот 09:00 занимает 09:00-10:00 и задевает его начало.
	// Выживших слотов нет, день полностью занят
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		{
			ID:              1,
			SalonID:         1,
			ServiceID:       7,
			StartTime:       time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			Status:          domain.StatusConfirmed,
			DurationMinutes: 60,
		},
	}}
	uc := newTestUseCase(testSalonRepo(t), reservations, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.Equal(t, domain.DayFullyBooked, resp.Days[0].Status)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestFindAvailableSlotsCancelledDoesNotBlock(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		{
			ID:              1,
			SalonID:         1,
			ServiceID:       7,
			StartTime:       time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			Status:          domain.StatusCancelled,
			DurationMinutes: 60,
		},
	}}
	uc := newTestUseCase(testSalonRepo(t), reservations, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(resp.Days[0]))
}

func TestFindAvailableSlotsNonWorkingOverrideClosesDay(t *testing.T) {
	salons := testSalonRepo(t)
	salons.overrides = []domain.ScheduleOverride{
		{
			SalonID:   1,
			StartTime: mondayDate,
			EndTime:   mondayDate.AddDate(0, 0, 1),
			IsWorking: false,
		},
	}
	uc := newTestUseCase(salons, &fakeReservationRepo{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DayClosed, resp.Days[0].Status)
}

func TestFindAvailableSlotsCacheRoundTrip(t *testing.T) {
	c := newFakeCache()
	uc := newTestUseCase(testSalonRepo(t), &fakeReservationRepo{}, c)

	req := &Request{SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets, "second run must be served from cache")
	assert.Equal(t, first.Days, second.Days)
}

func TestFindAvailableSlotsTodayNotCached(t *testing.T) {
	salons := testSalonRepo(t)
	salons.hours = append(salons.hours, domain.OpenHours{
		SalonID: 1, DayOfWeek: domain.Sunday,
		Open: mustTimeString(t, "09:00"), Close: mustTimeString(t, "11:00"),
	})
	c := newFakeCache()
	uc := newTestUseCase(salons, &fakeReservationRepo{}, c)

	// Запрашиваем сегодняшний день: кеш не трогаем ни на чтение, ни на запись
	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: sundayDate, EndDate: sundayDate,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, c.gets)
	assert.Equal(t, 0, c.sets)
}

func TestFindAvailableSlotsPastSlotsFiltered(t *testing.T) {
	salons := testSalonRepo(t)
	salons.hours = append(salons.hours, domain.OpenHours{
		SalonID: 1, DayOfWeek: domain.Sunday,
		Open: mustTimeString(t, "09:00"), Close: mustTimeString(t, "11:00"),
	})
	uc := newTestUseCase(salons, &fakeReservationRepo{}, nil)

	// Сейчас 08:00 воскресенья: все слоты дня еще впереди
	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: sundayDate, EndDate: sundayDate,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(resp.Days[0]))

	// Сейчас 09:45: рабочее окно урезается до [09:45, 11:00) и сетка
	// слотов строится заново от его начала. 09:45+60 помещается до
	// закрытия, следующий шаг 10:15 уже нет
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 1, 9, 45, 0, 0, time.UTC)}
	resp, err = uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: sundayDate, EndDate: sundayDate,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:45"}, slotStarts(resp.Days[0]))
}

func TestFindAvailableSlotsPastDaysSkipped(t *testing.T) {
	salons := testSalonRepo(t)
	salons.hours = append(salons.hours, domain.OpenHours{
		SalonID: 1, DayOfWeek: domain.Saturday,
		Open: mustTimeString(t, "09:00"), Close: mustTimeString(t, "11:00"),
	})
	uc := newTestUseCase(salons, &fakeReservationRepo{}, nil)

	// Диапазон начинается в прошлую субботу: она рабочая, но уже
	// целиком прошла и в выдачу не попадает. Первый день - сегодня
	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: sundayDate.AddDate(0, 0, -1), EndDate: mondayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	assert.Equal(t, "2026-03-01", resp.Days[0].Date.Format(domain.DateFormat))
	assert.Equal(t, domain.DayClosed, resp.Days[0].Status)
	assert.Equal(t, "2026-03-02", resp.Days[1].Date.Format(domain.DateFormat))
	assert.Equal(t, domain.DayAvailable, resp.Days[1].Status)
}

func TestFindAvailableSlotsTodayAllHoursPassed(t *testing.T) {
	salons := testSalonRepo(t)
	salons.hours = append(salons.hours, domain.OpenHours{
		SalonID: 1, DayOfWeek: domain.Sunday,
		Open: mustTimeString(t, "06:00"), Close: mustTimeString(t, "07:30"),
	})
	uc := newTestUseCase(salons, &fakeReservationRepo{}, nil)

	// К 08:00 рабочее окно воскресенья уже закрыто: день выглядит
	// закрытым, а не полностью занятым
	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: sundayDate, EndDate: sundayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.Equal(t, domain.DayClosed, resp.Days[0].Status)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestFindAvailableSlotsNegativeOffsetTimezone(t *testing.T) {
	salons := testSalonRepo(t)
	salons.salon.Timezone = "America/New_York"
	uc := newTestUseCase(salons, &fakeReservationRepo{}, nil)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Дата запроса распарсена как UTC-полночь. Для салона с
	// отрицательным смещением это вечер предыдущего местного дня:
	// день должен привязываться по Y/M/D, а не по моменту
	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.Equal(t, "2026-03-02", day.Date.Format(domain.DateFormat))
	assert.Equal(t, domain.DayAvailable, day.Status)
	require.NotEmpty(t, day.Slots)
	assert.Equal(t, "09:00", day.Slots[0].StartTime.In(loc).Format("15:04"))
}

func TestFindAvailableSlotsSalonNotFound(t *testing.T) {
	salons := testSalonRepo(t)
	salons.salon = nil
	uc := newTestUseCase(salons, &fakeReservationRepo{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate,
	})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestFindAvailableSlotsValidation(t *testing.T) {
	uc := newTestUseCase(testSalonRepo(t), &fakeReservationRepo{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{
		SalonID: 1, ServiceID: 7, StartDate: mondayDate, EndDate: mondayDate.AddDate(0, 0, domain.MaxQueryRangeDays),
	})
	assert.ErrorIs(t, err, ErrDateRangeTooLong)
}
