package update_salon_schedule

import (
	"context"

	"github.com/krasivo-app/SalonBookingService/internal/service/schedules/models"
)

type SchedulesService interface {
	UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
