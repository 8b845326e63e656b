package models

import (
	"errors"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetSalonReservationsRequest запрос на получение бронирований салона
type GetSalonReservationsRequest struct {
	SalonID         int64      `json:"salonId"`
	StartTime       *time.Time `json:"startTime,omitempty"`       // Начало периода (опционально)
	EndTime         *time.Time `json:"endTime,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonReservationsRequest) ToDomainFilter() (domain.SalonReservationsFilter, error) {
	filter := domain.SalonReservationsFilter{
		SalonID:         r.SalonID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salonId"`
	ServiceID int64     `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`

	// Денормализованные данные услуги
	ServiceName              string  `json:"serviceName"`
	ServicePrice             float64 `json:"servicePrice"`
	DurationMinutes          int     `json:"durationMinutes"`
	BreakAfterServiceMinutes int     `json:"breakAfterServiceMinutes"`
	TechnicalBreakMinutes    int     `json:"technicalBreakMinutes"`

	ClientName           string  `json:"clientName"`
	ClientEmail          string  `json:"clientEmail,omitempty"`
	ClientPhone          string  `json:"clientPhone"`
	ClientNotes          *string `json:"clientNotes,omitempty"`
	PromotionID          *int64  `json:"promotionId,omitempty"`
	MarketingConsent     bool    `json:"marketingConsent"`
	NotificationsConsent bool    `json:"notificationsConsent"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:        r.ID,
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime(),
		Status:    string(r.Status),

		ServiceName:              r.ServiceName,
		ServicePrice:             r.ServicePrice,
		DurationMinutes:          r.DurationMinutes,
		BreakAfterServiceMinutes: r.BreakAfterServiceMinutes,
		TechnicalBreakMinutes:    r.TechnicalBreakMinutes,

		ClientName:           r.ClientName,
		ClientEmail:          r.ClientEmail,
		ClientPhone:          r.ClientPhone,
		ClientNotes:          r.ClientNotes,
		PromotionID:          r.PromotionID,
		MarketingConsent:     r.MarketingConsent,
		NotificationsConsent: r.NotificationsConsent,

		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: result}
}

// ToDomainReservationStatus валидирует и конвертирует строковый статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
