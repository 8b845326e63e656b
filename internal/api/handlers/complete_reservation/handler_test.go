package complete_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reservationsService "github.com/krasivo-app/SalonBookingService/internal/service/reservations"
	"github.com/krasivo-app/SalonBookingService/internal/service/reservations/models"
)

type fakeService struct {
	resp *models.ReservationResponse
	err  error
}

func (f *fakeService) Complete(_ context.Context, _ int64) (*models.ReservationResponse, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(svc ReservationsService, id string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reservationId}/complete", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/complete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleCompleted(t *testing.T) {
	svc := &fakeService{resp: &models.ReservationResponse{
		ID:        42,
		SalonID:   1,
		ServiceID: 7,
		StartTime: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:    "completed",
	}}

	rec := doRequest(svc, "42")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "completed", resp.Status)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", reservationsService.ErrReservationNotFound, http.StatusNotFound},
		// Неверный статус или визит в будущем - ошибка запроса, не конфликт
		{"cannot complete", reservationsService.ErrCannotComplete, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeService{err: tt.err}, "42")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleInvalidID(t *testing.T) {
	rec := doRequest(&fakeService{}, "not-a-number")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
