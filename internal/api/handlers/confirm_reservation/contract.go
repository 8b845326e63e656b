package confirm_reservation

import (
	"context"

	"github.com/krasivo-app/SalonBookingService/internal/service/reservations/models"
)

type ReservationsService interface {
	Confirm(ctx context.Context, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
