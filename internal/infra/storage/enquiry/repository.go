package enquiry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий обращений с формы обратной связи
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *domain.Enquiry) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("enquiries").
		Columns("name", "email", "phone", "message").
		Values(e.Name, e.Email, e.Phone, e.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	return e, nil
}

// List последние обращения
func (r *Repository) List(ctx context.Context, limit uint64) ([]*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "message", "created_at").
		From("enquiries").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	enquiries := make([]*domain.Enquiry, 0)
	for rows.Next() {
		var e domain.Enquiry
		var createdAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		e.CreatedAt = createdAt.Time
		enquiries = append(enquiries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}
	return enquiries, nil
}
