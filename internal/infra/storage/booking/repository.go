package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"package_id",
	"time_slot_id",
	"booking_date",
	"number_of_children",
	"children_ages",
	"status",
	"subtotal",
	"discount_amount",
	"total_amount",
	"voucher_id",
	"voucher_code",
	"payment_order_id",
	"payment_id",
	"payment_status",
	"contact_name",
	"contact_email",
	"contact_phone",
	"notes",
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

// Create создает новое бронирование.
// Вызывается внутри сериализуемой транзакции после проверки вместимости слота.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"package_id",
			"time_slot_id",
			"booking_date",
			"number_of_children",
			"children_ages",
			"status",
			"subtotal",
			"discount_amount",
			"total_amount",
			"voucher_id",
			"voucher_code",
			"payment_order_id",
			"payment_status",
			"contact_name",
			"contact_email",
			"contact_phone",
			"notes",
		).
		Values(
			booking.UserID,
			booking.PackageID,
			booking.TimeSlotID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.NumberOfChildren,
			pq.Array(booking.ChildrenAges),
			booking.Status,
			booking.Subtotal,
			booking.DiscountAmount,
			booking.TotalAmount,
			booking.VoucherID,
			booking.VoucherCode,
			booking.PaymentOrderID,
			booking.PaymentStatus,
			booking.ContactName,
			booking.ContactEmail,
			booking.ContactPhone,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы смена статуса была атомарной.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List административный список бронирований с фильтрацией по периоду, слоту и статусу.
// Без явного статуса отменённые исключаются, если не задан IncludeCancelled.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.TimeSlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_slot_id": *filter.TimeSlotID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.OrderBy("booking_date ASC", "time_slot_id ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// SumChildrenForSlot сумма детей по неотменённым бронированиям на (дату, слот)
func (r *Repository) SumChildrenForSlot(ctx context.Context, date time.Time, timeSlotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(number_of_children), 0)").
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": date.Format(domain.DateFormat),
			"time_slot_id": timeSlotID,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumChildrenForSlot - build select query: %w", ErrBuildQuery, err)
	}

	var booked int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booked); err != nil {
		return 0, fmt.Errorf("%w: SumChildrenForSlot - scan sum: %w", ErrScanRow, err)
	}

	return booked, nil
}

// SumChildrenByDate занятость всех слотов на дату: time_slot_id -> сумма детей
func (r *Repository) SumChildrenByDate(ctx context.Context, date time.Time) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot_id", "COALESCE(SUM(number_of_children), 0)").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		GroupBy("time_slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SumChildrenByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumChildrenByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	booked := make(map[int64]int)
	for rows.Next() {
		var slotID int64
		var sum int
		if err := rows.Scan(&slotID, &sum); err != nil {
			return nil, fmt.Errorf("%w: SumChildrenByDate - scan row: %w", ErrScanRow, err)
		}
		booked[slotID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumChildrenByDate - rows error: %w", ErrScanRow, err)
	}

	return booked, nil
}

// ListStalePending неоплаченные бронирования, созданные раньше createdBefore
func (r *Repository) ListStalePending(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"created_at": createdBefore}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования: статус, оплату, отмену
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("payment_order_id", booking.PaymentOrderID).
		Set("payment_id", booking.PaymentID).
		Set("payment_status", booking.PaymentStatus).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var ages pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PackageID,
		&booking.TimeSlotID,
		&booking.BookingDate,
		&booking.NumberOfChildren,
		&ages,
		&booking.Status,
		&booking.Subtotal,
		&booking.DiscountAmount,
		&booking.TotalAmount,
		&booking.VoucherID,
		&booking.VoucherCode,
		&booking.PaymentOrderID,
		&booking.PaymentID,
		&booking.PaymentStatus,
		&booking.ContactName,
		&booking.ContactEmail,
		&booking.ContactPhone,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ChildrenAges = []int64(ages)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
