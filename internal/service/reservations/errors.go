package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrCannotConfirm возвращается, когда бронирование нельзя подтвердить
	// из текущего статуса
	ErrCannotConfirm = errors.New("reservation cannot be confirmed")

	// ErrCannotComplete возвращается, когда бронирование нельзя завершить:
	// либо статус не confirmed, либо визит ещё не начался
	ErrCannotComplete = errors.New("reservation cannot be completed")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить
	// из текущего статуса
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidStatus возвращается при некорректном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
