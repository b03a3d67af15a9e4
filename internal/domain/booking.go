package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// validTransitions граф допустимых переходов статусов.
// Используется и для бронирований, и для дней рождения.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// PaymentStatus состояние оплаты бронирования
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentPaid        PaymentStatus = "paid"
	PaymentOffline     PaymentStatus = "offline"      // оплата на месте или созданное администратором
	PaymentNotRequired PaymentStatus = "not_required" // нулевая сумма
)

// Booking represents a play session booking for one or more children
type Booking struct {
	ID               int64
	UserID           int64
	PackageID        int64
	TimeSlotID       int64
	BookingDate      time.Time
	NumberOfChildren int
	ChildrenAges     []int64
	Status           BookingStatus

	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	VoucherID      *int64
	VoucherCode    *string

	PaymentOrderID *string
	PaymentID      *string
	PaymentStatus  PaymentStatus

	ContactName  string
	ContactEmail *string
	ContactPhone *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies slot capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// Transition переводит бронирование в новый статус и проставляет UpdatedAt.
// Недопустимый переход возвращает ErrInvalidTransition и ничего не меняет.
func (b *Booking) Transition(to BookingStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = now
	if to == StatusCancelled {
		b.CancelledAt = &now
	}
	return nil
}

// Reference человекочитаемый номер бронирования для уведомлений
func (b *Booking) Reference() string {
	return fmt.Sprintf("PZ-%06d", b.ID)
}

// BookingsFilter фильтр административного списка бронирований
type BookingsFilter struct {
	StartDate        *time.Time
	EndDate          *time.Time
	TimeSlotID       *int64
	Status           *BookingStatus
	IncludeCancelled bool
}
