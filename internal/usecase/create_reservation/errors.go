package create_reservation

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotConflict возвращается, когда запрошенное время пересекается
	// с занятым интервалом существующего бронирования
	ErrSlotConflict = errors.New("slot conflicts with an existing reservation")

	// ErrOutsideWorkingHours возвращается, когда занятое окно не помещается
	// в рабочие окна салона
	ErrOutsideWorkingHours = errors.New("requested time is outside working hours")

	// ErrStartTimeInPast возвращается, когда запрошенное время уже прошло
	ErrStartTimeInPast = errors.New("start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
