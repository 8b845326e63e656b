package schedules

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrDuplicateWeekday возвращается, когда день недели встречается
	// в недельном расписании дважды
	ErrDuplicateWeekday = errors.New("duplicate weekday in weekly schedule")

	// ErrInvalidTimeRange возвращается при некорректном интервале времени
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrOverlappingOverrides возвращается, когда исключения расписания
	// пересекаются между собой
	ErrOverlappingOverrides = errors.New("schedule overrides overlap")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
