package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/krasivo-app/SalonBookingService/internal/api/handlers"
	rescheduleReservation "github.com/krasivo-app/SalonBookingService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgReservationNotFound  = "бронирование не найдено"
	msgInvalidState         = "бронирование нельзя перенести из текущего статуса"
	msgSlotConflict         = "выбранное время уже занято"
	msgOutsideWorkingHours  = "выбранное время вне рабочих часов салона"
	msgStartTimeInPast      = "выбранное время уже прошло"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, rescheduleReservation.ErrInvalidState):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid state: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, rescheduleReservation.ErrSlotConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Slot conflict: reservation_id=%d, new_start=%s",
				reservationID, req.NewStartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleReservation.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Outside working hours: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleReservation.ErrStartTimeInPast):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Start time in past: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/reschedule - Failed to reschedule: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/reschedule - Reservation rescheduled: reservation_id=%d, new_start=%s",
		result.ID, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
