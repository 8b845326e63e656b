package find_available_slots

import (
	"context"

	findAvailableSlots "github.com/krasivo-app/SalonBookingService/internal/usecase/find_available_slots"
)

type FindAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *findAvailableSlots.Request) (*findAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
