package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidState возвращается, когда бронирование в терминальном
	// статусе и перенос невозможен
	ErrInvalidState = errors.New("reservation cannot be rescheduled in its current status")

	// ErrSlotConflict возвращается, когда новое время пересекается
	// с занятым интервалом другого бронирования
	ErrSlotConflict = errors.New("slot conflicts with an existing reservation")

	// ErrOutsideWorkingHours возвращается, когда занятое окно не помещается
	// в рабочие окна салона
	ErrOutsideWorkingHours = errors.New("requested time is outside working hours")

	// ErrStartTimeInPast возвращается, когда новое время уже прошло
	ErrStartTimeInPast = errors.New("start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
