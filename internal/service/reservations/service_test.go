package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	reservationRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/reservation"
	"github.com/krasivo-app/SalonBookingService/internal/service/reservations/models"
	"github.com/krasivo-app/SalonBookingService/pkg/ptr"
)

var (
	testNow   = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	startTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
)

type fakeReservationRepo struct {
	byID          map[int64]*domain.Reservation
	listed        []*domain.Reservation
	lastFilter    domain.SalonReservationsFilter
	updatedStatus domain.ReservationStatus
	cancelledID   int64
	cancelReason  *string
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) ListWithFilter(_ context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.updatedStatus = status
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, reason *string) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.cancelledID = id
	f.cancelReason = reason
	return nil
}

type fakeInvalidator struct {
	salonIDs []int64
}

func (f *fakeInvalidator) InvalidateSalon(_ context.Context, salonID int64) error {
	f.salonIDs = append(f.salonIDs, salonID)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		SalonID:         3,
		ServiceID:       7,
		StartTime:       startTime,
		Status:          status,
		ServiceName:     "Haircut",
		DurationMinutes: 60,
		ClientName:      "Anna",
		ClientPhone:     "+79990001122",
	}
}

func newTestService(repo *fakeReservationRepo, inv *fakeInvalidator) *Service {
	svc := NewService(repo, inv, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func TestGetByID(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		5: reservation(5, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeInvalidator{})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, startTime.Add(60*time.Minute), resp.EndTime)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestConfirm(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		5: reservation(5, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeInvalidator{})

	resp, err := svc.Confirm(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestConfirmOnlyFromPending(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
				5: reservation(5, status),
			}}
			svc := newTestService(repo, &fakeInvalidator{})

			_, err := svc.Confirm(context.Background(), 5)
			assert.ErrorIs(t, err, ErrCannotConfirm)
		})
	}
}

func TestComplete(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		5: reservation(5, domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeInvalidator{})

	resp, err := svc.Complete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		5: reservation(5, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeInvalidator{})

	_, err := svc.Complete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestCompleteBeforeStartRejected(t *testing.T) {
	r := reservation(5, domain.StatusConfirmed)
	r.StartTime = testNow.Add(2 * time.Hour)
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{5: r}}
	svc := newTestService(repo, &fakeInvalidator{})

	_, err := svc.Complete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotComplete)
	// Статус не должен был измениться
	assert.Empty(t, repo.updatedStatus)
}

func TestCancel(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		5: reservation(5, domain.StatusConfirmed),
	}}
	inv := &fakeInvalidator{}
	svc := newTestService(repo, inv)

	reason := ptr.Ptr("client asked")
	err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{CancellationReason: reason})
	require.NoError(t, err)

	assert.Equal(t, int64(5), repo.cancelledID)
	assert.Equal(t, reason, repo.cancelReason)
	// Отмена освобождает слот - кеш доступности салона сброшен
	assert.Equal(t, []int64{3}, inv.salonIDs)
}

func TestCancelTerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
				5: reservation(5, status),
			}}
			inv := &fakeInvalidator{}
			svc := newTestService(repo, inv)

			err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{})
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Empty(t, inv.salonIDs)
		})
	}
}

func TestGetSalonReservations(t *testing.T) {
	repo := &fakeReservationRepo{listed: []*domain.Reservation{
		reservation(5, domain.StatusPending),
		reservation(6, domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeInvalidator{})

	status := "pending"
	resp, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID:   3,
		StartTime: ptr.Ptr(startTime),
		EndTime:   ptr.Ptr(startTime.AddDate(0, 0, 7)),
		Status:    &status,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.lastFilter.Status)
}

func TestGetSalonReservationsValidation(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, &fakeInvalidator{})

	_, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{SalonID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID:   3,
		StartTime: ptr.Ptr(startTime),
		EndTime:   ptr.Ptr(startTime.Add(-time.Hour)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badStatus := "unknown"
	_, err = svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID: 3,
		Status:  &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
