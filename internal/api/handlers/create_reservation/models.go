package create_reservation

import (
	"time"

	createReservation "github.com/krasivo-app/SalonBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SalonID   int64     `json:"salonId"`
	ServiceID int64     `json:"serviceId"`
	StartTime time.Time `json:"startTime"` // RFC 3339

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	ClientPhone string  `json:"clientPhone"`
	ClientNotes *string `json:"clientNotes,omitempty"`

	PromotionID          *int64 `json:"promotionId,omitempty"`
	MarketingConsent     bool   `json:"marketingConsent,omitempty"`
	NotificationsConsent bool   `json:"notificationsConsent,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salonId"`
	ServiceID int64     `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`

	ServiceName              string  `json:"serviceName"`
	ServicePrice             float64 `json:"servicePrice"`
	DurationMinutes          int     `json:"durationMinutes"`
	BreakAfterServiceMinutes int     `json:"breakAfterServiceMinutes"`
	TechnicalBreakMinutes    int     `json:"technicalBreakMinutes"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	ClientPhone string  `json:"clientPhone"`
	ClientNotes *string `json:"clientNotes,omitempty"`

	PromotionID          *int64 `json:"promotionId,omitempty"`
	MarketingConsent     bool   `json:"marketingConsent"`
	NotificationsConsent bool   `json:"notificationsConsent"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		StartTime: r.StartTime,

		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ClientNotes: r.ClientNotes,

		PromotionID:          r.PromotionID,
		MarketingConsent:     r.MarketingConsent,
		NotificationsConsent: r.NotificationsConsent,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		StartTime: resp.StartTime,
		EndTime:   resp.EndTime,
		Status:    resp.Status,

		ServiceName:              resp.ServiceName,
		ServicePrice:             resp.ServicePrice,
		DurationMinutes:          resp.DurationMinutes,
		BreakAfterServiceMinutes: resp.BreakAfterServiceMinutes,
		TechnicalBreakMinutes:    resp.TechnicalBreakMinutes,

		ClientName:  resp.ClientName,
		ClientEmail: resp.ClientEmail,
		ClientPhone: resp.ClientPhone,
		ClientNotes: resp.ClientNotes,

		PromotionID:          resp.PromotionID,
		MarketingConsent:     resp.MarketingConsent,
		NotificationsConsent: resp.NotificationsConsent,

		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
