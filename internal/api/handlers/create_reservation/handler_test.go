package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createReservation "github.com/krasivo-app/SalonBookingService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp *createReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createReservation.Request) (*createReservation.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"salonId": 1,
	"serviceId": 7,
	"startTime": "2026-03-02T10:00:00Z",
	"clientName": "Anna",
	"clientPhone": "+79990001122"
}`

func doRequest(uc CreateReservationUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleCreated(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createReservation.Response{
		ID:          42,
		SalonID:     1,
		ServiceID:   7,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Status:      "pending",
		ServiceName: "Haircut",
		ClientName:  "Anna",
		ClientPhone: "+79990001122",
	}}

	rec := doRequest(uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, start.Add(time.Hour), resp.EndTime)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"slot conflict", createReservation.ErrSlotConflict, http.StatusConflict},
		{"salon not found", createReservation.ErrSalonNotFound, http.StatusNotFound},
		{"service not found", createReservation.ErrServiceNotFound, http.StatusNotFound},
		{"outside working hours", createReservation.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"start in past", createReservation.ErrStartTimeInPast, http.StatusBadRequest},
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleMalformedBody(t *testing.T) {
	rec := doRequest(&fakeUseCase{}, `{"salonId": "not a number"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUnknownFieldRejected(t *testing.T) {
	rec := doRequest(&fakeUseCase{}, `{"salonId": 1, "unknownField": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
