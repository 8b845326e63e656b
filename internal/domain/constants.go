package domain

// Default configuration values
const (
	DefaultSlotStepMinutes = 15
)

// Business validation constants
const (
	MinSlotStepMinutes = 5
	MaxSlotStepMinutes = 240

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxBreakMinutes           = 240

	MaxQueryRangeDays = 62 // slot queries are capped at two months

	MaxClientNotesLength        = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование занимает время
// Используется при выборке бронирований для расчёта занятых интервалов
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
