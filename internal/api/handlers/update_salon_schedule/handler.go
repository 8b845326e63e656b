package update_salon_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/krasivo-app/SalonBookingService/internal/api/handlers"
	schedulesService "github.com/krasivo-app/SalonBookingService/internal/service/schedules"
	"github.com/krasivo-app/SalonBookingService/internal/service/schedules/models"
)

const (
	msgInvalidSalonID       = "некорректный ID салона"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgSalonNotFound        = "салон не найден"
	msgInvalidWeekday       = "некорректный день недели"
	msgDuplicateWeekday     = "день недели указан дважды"
	msgInvalidTimeRange     = "некорректный интервал времени"
	msgOverlappingOverrides = "исключения расписания пересекаются"
	msgInvalidInput         = "некорректные данные расписания"
)

type Handler struct {
	service SchedulesService
	logger  Logger
}

func NewHandler(service SchedulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/schedule
// Расписание заменяется целиком: недельные правила и исключения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.UpdateSchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedulesService.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/schedule - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, schedulesService.ErrInvalidWeekday):
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid weekday: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedulesService.ErrDuplicateWeekday):
			h.logger.Warn("PUT /salons/{id}/schedule - Duplicate weekday: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgDuplicateWeekday)

		case errors.Is(err, schedulesService.ErrInvalidTimeRange):
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid time range: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedulesService.ErrOverlappingOverrides):
			h.logger.Warn("PUT /salons/{id}/schedule - Overlapping overrides: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgOverlappingOverrides)

		case errors.Is(err, schedulesService.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /salons/{id}/schedule - Failed to update schedule: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/schedule - Schedule updated: salon_id=%d (%d weekly rules, %d overrides)",
		salonID, len(result.Weekly), len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}
