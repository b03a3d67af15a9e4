package holiday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/pgerrors"
	"github.com/m04kA/PlayZone-BookingService/pkg/psqlbuilder"
)

var holidayColumns = []string{"id", "holiday_date", "name", "is_active", "created_at"}

// Repository репозиторий выходных дней
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create заводит выходной. Снятый ранее выходной на ту же дату включается снова,
// активный -> ErrHolidayExists.
func (r *Repository) Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("holiday_date", "name", "is_active").
		Values(h.Date.Format(domain.DateFormat), h.Name, h.IsActive).
		Suffix("ON CONFLICT (holiday_date) DO UPDATE SET name = EXCLUDED.name, is_active = TRUE " +
			"WHERE holidays.is_active = FALSE RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgerrors.IsUniqueViolation(err) {
			return nil, ErrHolidayExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	return h, nil
}

// GetActiveByDate активный выходной на дату или ErrHolidayNotFound
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		Where(squirrel.Eq{"holiday_date": date.Format(domain.DateFormat), "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %w", ErrBuildQuery, err)
	}

	h, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - scan holiday: %w", ErrScanRow, err)
	}
	return h, nil
}

// ListFrom активные выходные начиная с даты
func (r *Repository) ListFrom(ctx context.Context, from time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		Where(squirrel.GtOrEq{"holiday_date": from.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("holiday_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListFrom - scan row: %w", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFrom - rows error: %w", ErrScanRow, err)
	}
	return holidays, nil
}

// Deactivate снимает выходной (запись остаётся в истории)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holidays").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var h domain.Holiday
	var createdAt sql.NullTime
	if err := row.Scan(&h.ID, &h.Date, &h.Name, &h.IsActive, &createdAt); err != nil {
		return nil, err
	}
	h.CreatedAt = createdAt.Time
	return &h, nil
}
