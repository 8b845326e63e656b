package get_salon_reservations

import (
	"net/url"
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	"github.com/krasivo-app/SalonBookingService/internal/service/reservations/models"
	"github.com/krasivo-app/SalonBookingService/pkg/ptr"
)

// ToServiceRequest создает запрос сервиса из query параметров
// Параметры from/to принимаются как даты (YYYY-MM-DD) и разворачиваются
// в полуинтервал [from 00:00 UTC, to+1 00:00 UTC)
func ToServiceRequest(salonID int64, query url.Values) (*models.GetSalonReservationsRequest, error) {
	req := &models.GetSalonReservationsRequest{
		SalonID: salonID,
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartTime = ptr.Ptr(from)
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndTime = ptr.Ptr(to.AddDate(0, 0, 1))
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
