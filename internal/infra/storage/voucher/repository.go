package voucher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/pgerrors"
	"github.com/m04kA/PlayZone-BookingService/pkg/psqlbuilder"
)

var voucherColumns = []string{
	"id",
	"code",
	"discount_type",
	"discount_value",
	"max_discount",
	"valid_from",
	"valid_till",
	"usage_limit",
	"used_count",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий ваучеров и их погашений
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ваучер. Код должен быть уже нормализован.
func (r *Repository) Create(ctx context.Context, v *domain.Voucher) (*domain.Voucher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var maxDiscount decimal.NullDecimal
	if v.MaxDiscount != nil {
		maxDiscount = decimal.NewNullDecimal(*v.MaxDiscount)
	}

	query, args, err := psqlbuilder.Insert("vouchers").
		Columns(
			"code",
			"discount_type",
			"discount_value",
			"max_discount",
			"valid_from",
			"valid_till",
			"usage_limit",
			"is_active",
		).
		Values(
			v.Code,
			v.DiscountType,
			v.DiscountValue,
			maxDiscount,
			v.ValidFrom,
			v.ValidTill,
			v.UsageLimit,
			v.IsActive,
		).
		Suffix("RETURNING id, used_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.UsedCount, &createdAt, &updatedAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrVoucherExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return v, nil
}

// GetByCode ваучер по нормализованному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": code})
}

// GetByID ваучер по ID. Внутри транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Voucher, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Voucher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(voucherColumns...).From("vouchers").Where(where)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	v, err := scanVoucher(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVoucherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan voucher: %w", ErrScanRow, op, err)
	}
	return v, nil
}

// List все ваучеры, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Voucher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(voucherColumns...).
		From("vouchers").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	vouchers := make([]*domain.Voucher, 0)
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}
	return vouchers, nil
}

// Deactivate выключает ваучер
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vouchers").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
		return ErrVoucherNotFound
	}
	return nil
}

// IncrementUsage увеличивает used_count на 1, только если лимит не исчерпан.
// Условие в самом UPDATE держит used_count <= usage_limit при конкурентных погашениях.
func (r *Repository) IncrementUsage(ctx context.Context, voucherID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vouchers").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": voucherID}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": nil},
			squirrel.Expr("used_count < usage_limit"),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUsageLimitReached
	}
	return nil
}

// CreateRedemption фиксирует погашение ваучера бронированием.
// Возвращает false, если для этого бронирования погашение уже есть.
func (r *Repository) CreateRedemption(ctx context.Context, redemption *domain.VoucherRedemption) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("voucher_redemptions").
		Columns("voucher_id", "booking_id", "discount").
		Values(redemption.VoucherID, redemption.BookingID, redemption.Discount).
		Suffix("ON CONFLICT (booking_id) DO NOTHING RETURNING id, redeemed_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateRedemption - build insert query: %w", ErrBuildQuery, err)
	}

	var redeemedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&redemption.ID, &redeemedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateRedemption - execute insert: %w", ErrExecQuery, err)
	}

	redemption.RedeemedAt = redeemedAt.Time
	return true, nil
}

// DeleteRedemption удаляет погашение бронирования, когда лимит ваучера уже исчерпан
func (r *Repository) DeleteRedemption(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("voucher_redemptions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteRedemption - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteRedemption - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVoucher(row rowScanner) (*domain.Voucher, error) {
	var v domain.Voucher
	var maxDiscount decimal.NullDecimal
	var usageLimit sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&v.ID,
		&v.Code,
		&v.DiscountType,
		&v.DiscountValue,
		&maxDiscount,
		&v.ValidFrom,
		&v.ValidTill,
		&usageLimit,
		&v.UsedCount,
		&v.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if maxDiscount.Valid {
		v.MaxDiscount = &maxDiscount.Decimal
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		v.UsageLimit = &limit
	}
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return &v, nil
}
