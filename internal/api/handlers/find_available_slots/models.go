package find_available_slots

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	findAvailableSlots "github.com/krasivo-app/SalonBookingService/internal/usecase/find_available_slots"
	"github.com/krasivo-app/SalonBookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID   int64             `json:"salonId"`
	ServiceID int64             `json:"serviceId"`
	Days      []DayAvailability `json:"days"`
}

// DayAvailability доступность одного дня
// Список слотов присутствует только у статуса AVAILABLE
type DayAvailability struct {
	Date   string          `json:"date"`   // "2026-03-02"
	Status string          `json:"status"` // AVAILABLE | FULLY_BOOKED | CLOSED
	Slots  []AvailableSlot `json:"slots,omitempty"`
}

// AvailableSlot свободный слот: местное время салона "HH:MM" для
// отображения и абсолютный момент начала для создания бронирования
type AvailableSlot struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Value     time.Time        `json:"value"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(salonID, serviceID int64, startDateStr, endDateStr string) (*findAvailableSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, err
	}

	return &findAvailableSlots.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailableSlots.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		// Моменты слотов несут таймзону салона, NewTimeString форматирует
		// местные часы и минуты
		var slots []AvailableSlot
		for _, slot := range day.Slots {
			slots = append(slots, AvailableSlot{
				StartTime: types.NewTimeString(slot.StartTime),
				EndTime:   types.NewTimeString(slot.EndTime),
				Value:     slot.StartTime,
			})
		}

		days[i] = DayAvailability{
			Date:   day.Date.Format(domain.DateFormat),
			Status: string(day.Status),
			Slots:  slots,
		}
	}

	return &AvailabilityResponse{
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		Days:      days,
	}
}
