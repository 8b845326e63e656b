package models

import (
	"time"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	"github.com/krasivo-app/SalonBookingService/pkg/types"
)

// Request модели

// WeeklyRule строка недельного расписания
type WeeklyRule struct {
	DayOfWeek string `json:"dayOfWeek"` // "MON".."SUN"
	Open      string `json:"open"`      // "HH:MM"
	Close     string `json:"close"`     // "HH:MM"
}

// Override разовое исключение расписания
type Override struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	IsWorking bool      `json:"isWorking"`
}

// UpdateScheduleRequest запрос на полную замену расписания салона
type UpdateScheduleRequest struct {
	SalonID   int64        `json:"-"`
	Weekly    []WeeklyRule `json:"weekly"`
	Overrides []Override   `json:"overrides"`
}

// Response модели

// ScheduleResponse расписание салона: недельные правила и исключения
type ScheduleResponse struct {
	SalonID   int64        `json:"salonId"`
	Weekly    []WeeklyRule `json:"weekly"`
	Overrides []Override   `json:"overrides"`
}

// Методы конвертации

// ToDomainOpenHours конвертирует строку недельного расписания в domain модель
func (r WeeklyRule) ToDomainOpenHours(salonID int64) (domain.OpenHours, error) {
	open, err := types.NewTimeStringFromString(r.Open)
	if err != nil {
		return domain.OpenHours{}, err
	}

	closeAt, err := types.NewTimeStringFromString(r.Close)
	if err != nil {
		return domain.OpenHours{}, err
	}

	return domain.OpenHours{
		SalonID:   salonID,
		DayOfWeek: domain.Weekday(r.DayOfWeek),
		Open:      open,
		Close:     closeAt,
	}, nil
}

// ToDomainOverride конвертирует исключение расписания в domain модель
func (r Override) ToDomainOverride(salonID int64) domain.ScheduleOverride {
	return domain.ScheduleOverride{
		SalonID:   salonID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsWorking: r.IsWorking,
	}
}

// FromDomainSchedule конвертирует domain модели в DTO
func FromDomainSchedule(salonID int64, hours []domain.OpenHours, overrides []domain.ScheduleOverride) *ScheduleResponse {
	weekly := make([]WeeklyRule, 0, len(hours))
	for _, h := range hours {
		weekly = append(weekly, WeeklyRule{
			DayOfWeek: string(h.DayOfWeek),
			Open:      h.Open.String(),
			Close:     h.Close.String(),
		})
	}

	ovs := make([]Override, 0, len(overrides))
	for _, ov := range overrides {
		ovs = append(ovs, Override{
			StartTime: ov.StartTime,
			EndTime:   ov.EndTime,
			IsWorking: ov.IsWorking,
		})
	}

	return &ScheduleResponse{
		SalonID:   salonID,
		Weekly:    weekly,
		Overrides: ovs,
	}
}
