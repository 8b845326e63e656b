package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	"github.com/krasivo-app/SalonBookingService/pkg/psqlbuilder"
	"github.com/krasivo-app/SalonBookingService/pkg/txmanager"
)

// Repository репозиторий салонов, услуг и расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"slot_step_minutes",
		"created_at",
		"updated_at",
	).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Salon
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Timezone,
		&s.SlotStepMinutes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan salon: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetServiceByID получает услугу салона по ID
// Услуга другого салона считается не найденной
func (r *Repository) GetServiceByID(ctx context.Context, salonID, serviceID int64) (*domain.Service, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"price",
		"duration_minutes",
		"break_after_service_minutes",
		"technical_break_minutes",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.SalonID,
		&svc.Name,
		&svc.Price,
		&svc.DurationMinutes,
		&svc.BreakAfterServiceMinutes,
		&svc.TechnicalBreakMinutes,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// ListOpenHours получает недельное расписание салона
func (r *Repository) ListOpenHours(ctx context.Context, salonID int64) ([]domain.OpenHours, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"day_of_week",
		"open_time",
		"close_time",
	).
		From("open_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.OpenHours, 0)
	for rows.Next() {
		var h domain.OpenHours
		if err := rows.Scan(&h.ID, &h.SalonID, &h.DayOfWeek, &h.Open, &h.Close); err != nil {
			return nil, fmt.Errorf("%w: ListOpenHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ListOverridesInRange получает исключения расписания салона,
// пересекающие период [from, to)
func (r *Repository) ListOverridesInRange(ctx context.Context, salonID int64, from, to time.Time) ([]domain.ScheduleOverride, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"start_time",
		"end_time",
		"is_working",
	).
		From("schedule_overrides").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.ScheduleOverride, 0)
	for rows.Next() {
		var ov domain.ScheduleOverride
		if err := rows.Scan(&ov.ID, &ov.SalonID, &ov.StartTime, &ov.EndTime, &ov.IsWorking); err != nil {
			return nil, fmt.Errorf("%w: ListOverridesInRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, ov)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverridesInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// ListOverrides получает все исключения расписания салона
func (r *Repository) ListOverrides(ctx context.Context, salonID int64) ([]domain.ScheduleOverride, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"start_time",
		"end_time",
		"is_working",
	).
		From("schedule_overrides").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.ScheduleOverride, 0)
	for rows.Next() {
		var ov domain.ScheduleOverride
		if err := rows.Scan(&ov.ID, &ov.SalonID, &ov.StartTime, &ov.EndTime, &ov.IsWorking); err != nil {
			return nil, fmt.Errorf("%w: ListOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, ov)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// ReplaceOpenHours заменяет недельное расписание салона целиком
// Вызывается внутри транзакции сервиса расписаний
func (r *Repository) ReplaceOpenHours(ctx context.Context, salonID int64, hours []domain.OpenHours) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Delete("open_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpenHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOpenHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("open_hours").
		Columns("salon_id", "day_of_week", "open_time", "close_time")
	for _, h := range hours {
		insert = insert.Values(salonID, h.DayOfWeek, h.Open, h.Close)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpenHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOpenHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceOverrides заменяет исключения расписания салона целиком
// Вызывается внутри транзакции сервиса расписаний
func (r *Repository) ReplaceOverrides(ctx context.Context, salonID int64, overrides []domain.ScheduleOverride) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_overrides").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - execute delete: %v", ErrExecQuery, err)
	}

	if len(overrides) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("schedule_overrides").
		Columns("salon_id", "start_time", "end_time", "is_working")
	for _, ov := range overrides {
		insert = insert.Values(salonID, ov.StartTime, ov.EndTime, ov.IsWorking)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
