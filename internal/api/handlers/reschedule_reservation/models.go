package reschedule_reservation

import (
	"time"

	rescheduleReservation "github.com/krasivo-app/SalonBookingService/internal/usecase/reschedule_reservation"
)

// RescheduleReservationRequest HTTP request model
type RescheduleReservationRequest struct {
	NewStartTime time.Time `json:"newStartTime"` // RFC 3339
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salonId"`
	ServiceID int64     `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`

	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`

	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail,omitempty"`
	ClientPhone string `json:"clientPhone"`

	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleReservationRequest) ToUseCaseRequest(reservationID int64) *rescheduleReservation.Request {
	return &rescheduleReservation.Request{
		ReservationID: reservationID,
		NewStartTime:  r.NewStartTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		StartTime: resp.StartTime,
		EndTime:   resp.EndTime,
		Status:    resp.Status,

		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		DurationMinutes: resp.DurationMinutes,

		ClientName:  resp.ClientName,
		ClientEmail: resp.ClientEmail,
		ClientPhone: resp.ClientPhone,

		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
