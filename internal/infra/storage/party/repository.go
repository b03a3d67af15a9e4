package party

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/psqlbuilder"
)

var partyColumns = []string{
	"id",
	"user_id",
	"package_id",
	"party_date",
	"start_time",
	"guests",
	"child_name",
	"child_age",
	"theme",
	"status",
	"contact_name",
	"contact_email",
	"contact_phone",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на дни рождения
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *domain.Party) (*domain.Party, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parties").
		Columns(
			"user_id",
			"package_id",
			"party_date",
			"start_time",
			"guests",
			"child_name",
			"child_age",
			"theme",
			"status",
			"contact_name",
			"contact_email",
			"contact_phone",
			"notes",
		).
		Values(
			p.UserID,
			p.PackageID,
			p.PartyDate.Format(domain.DateFormat),
			p.StartTime,
			p.Guests,
			p.ChildName,
			p.ChildAge,
			p.Theme,
			p.Status,
			p.ContactName,
			p.ContactEmail,
			p.ContactPhone,
			p.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByID заявка по ID; внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(partyColumns...).From("parties").Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanParty(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan party: %w", ErrScanRow, err)
	}
	return p, nil
}

// List заявки по дате праздника, опционально по статусу
func (r *Repository) List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Party, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(partyColumns...).From("parties").OrderBy("party_date ASC", "start_time ASC")
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	parties := make([]*domain.Party, 0)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}
	return parties, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, p *domain.Party) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parties").
		Set("status", p.Status).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPartyNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParty(row rowScanner) (*domain.Party, error) {
	var p domain.Party
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.PackageID,
		&p.PartyDate,
		&p.StartTime,
		&p.Guests,
		&p.ChildName,
		&p.ChildAge,
		&p.Theme,
		&p.Status,
		&p.ContactName,
		&p.ContactEmail,
		&p.ContactPhone,
		&p.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
