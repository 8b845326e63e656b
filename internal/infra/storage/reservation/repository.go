package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
	"github.com/krasivo-app/SalonBookingService/pkg/psqlbuilder"
	"github.com/krasivo-app/SalonBookingService/pkg/txmanager"
)

// exclusionViolation код ошибки PostgreSQL при нарушении exclusion constraint
// (страховка от двойного бронирования на уровне схемы)
const exclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"salon_id",
	"service_id",
	"start_time",
	"status",
	"service_name",
	"service_price",
	"duration_minutes",
	"break_after_service_minutes",
	"technical_break_minutes",
	"client_name",
	"client_email",
	"client_phone",
	"client_notes",
	"promotion_id",
	"marketing_consent",
	"notifications_consent",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте открыта транзакция, вставка выполняется в ней -
// usecase создания бронирования оборачивает проверку конфликта и вставку
// в одну сериализуемую транзакцию
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"salon_id",
			"service_id",
			"start_time",
			"status",
			"service_name",
			"service_price",
			"duration_minutes",
			"break_after_service_minutes",
			"technical_break_minutes",
			"client_name",
			"client_email",
			"client_phone",
			"client_notes",
			"promotion_id",
			"marketing_consent",
			"notifications_consent",
		).
		Values(
			res.SalonID,
			res.ServiceID,
			res.StartTime,
			res.Status,
			res.ServiceName,
			res.ServicePrice,
			res.DurationMinutes,
			res.BreakAfterServiceMinutes,
			res.TechnicalBreakMinutes,
			res.ClientName,
			res.ClientEmail,
			res.ClientPhone,
			res.ClientNotes,
			res.PromotionID,
			res.MarketingConsent,
			res.NotificationsConsent,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotOccupied
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListWithFilter получает бронирования салона с гибкой фильтрацией
// по периоду [StartTime, EndTime), статусу и активности
//
// Путь чтения (генерация слотов) и путь записи (проверка конфликта)
// получают выборку одной и той же формы через этот метод. Внутри
// транзакции при заданном периоде добавляется FOR UPDATE - выбранные
// строки блокируются до конца транзакции создания/переноса
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartTime})
	}
	if filter.EndTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndTime})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) && filter.StartTime != nil && filter.EndTime != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateStatus")
}

// UpdateStartTime переносит бронирование на новое время
// Статус сохраняется; вызывается только из usecase переноса после
// проверки конфликта в той же транзакции
func (r *Repository) UpdateStartTime(ctx context.Context, id int64, startTime time.Time) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStartTime - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotOccupied
		}
		return fmt.Errorf("%w: UpdateStartTime - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateStartTime")
}

// Cancel отменяет бронирование с указанием причины
// Физическое удаление не поддерживается - история сохраняется
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Cancel")
}

func requireRowsAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == exclusionViolation
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.SalonID,
		&res.ServiceID,
		&res.StartTime,
		&res.Status,
		&res.ServiceName,
		&res.ServicePrice,
		&res.DurationMinutes,
		&res.BreakAfterServiceMinutes,
		&res.TechnicalBreakMinutes,
		&res.ClientName,
		&res.ClientEmail,
		&res.ClientPhone,
		&res.ClientNotes,
		&res.PromotionID,
		&res.MarketingConsent,
		&res.NotificationsConsent,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
