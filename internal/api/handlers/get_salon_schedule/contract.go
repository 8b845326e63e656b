package get_salon_schedule

import (
	"context"

	"github.com/krasivo-app/SalonBookingService/internal/service/schedules/models"
)

type SchedulesService interface {
	GetSchedule(ctx context.Context, salonID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
