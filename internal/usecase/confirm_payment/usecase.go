package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/booking"
)

// UseCase подтверждение онлайн-оплаты бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	timeSlotRepo TimeSlotRepository
	verifier     SignatureVerifier
	vouchers     VoucherRedeemer
	publisher    EventPublisher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	timeSlotRepo TimeSlotRepository,
	verifier SignatureVerifier,
	vouchers VoucherRedeemer,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeSlotRepo: timeSlotRepo,
		verifier:     verifier,
		vouchers:     vouchers,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет подпись и переводит бронирование pending -> confirmed.
// Повторный вызов с тем же платежом возвращает успех без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking id=%d, order=%s, payment=%s", req.BookingID, req.OrderID, req.PaymentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	if !uc.verifier.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		uc.logger.Warn("ConfirmPayment: invalid signature for booking id=%d, order=%s", req.BookingID, req.OrderID)
		return nil, ErrInvalidSignature
	}

	now := uc.timeProvider.Now()
	var (
		booking          *domain.Booking
		alreadyConfirmed bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Внутри транзакции строка бронирования блокируется
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !req.Actor.CanAccess(b.UserID) {
			return ErrAccessDenied
		}
		if b.PaymentOrderID == nil || *b.PaymentOrderID != req.OrderID {
			return ErrOrderMismatch
		}

		if b.Status == domain.StatusConfirmed && b.PaymentID != nil && *b.PaymentID == req.PaymentID {
			booking, alreadyConfirmed = b, true
			return nil
		}
		if b.Status != domain.StatusPending {
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, b.Status)
		}

		if err := b.Transition(domain.StatusConfirmed, now); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
		}
		b.PaymentID = &req.PaymentID
		b.PaymentStatus = domain.PaymentPaid

		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			uc.logger.Error("ConfirmPayment: failed to update booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		// Оплата уже прошла, поэтому исчерпанный лимит ваучера не отменяет подтверждение
		if err := uc.vouchers.Redeem(txCtx, b); err != nil {
			if !errors.Is(err, domain.ErrVoucherUsageLimit) {
				return fmt.Errorf("%w: failed to redeem voucher: %w", ErrInternal, err)
			}
			uc.logger.Warn("ConfirmPayment: voucher limit reached for paid booking id=%d, discount kept", b.ID)
		}

		booking = b
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			uc.logger.Warn("ConfirmPayment: booking id=%d rejected: %v", req.BookingID, err)
		}
		return nil, err
	}

	if alreadyConfirmed {
		uc.logger.Info("ConfirmPayment: booking id=%d already confirmed with payment %s", booking.ID, req.PaymentID)
	} else {
		uc.metrics.IncBooking(string(domain.StatusConfirmed))
		uc.logger.Info("ConfirmPayment: booking id=%d confirmed", booking.ID)
		uc.publishConfirmed(ctx, booking, now)
	}

	return &Response{
		BookingID:        booking.ID,
		Reference:        booking.Reference(),
		Status:           string(booking.Status),
		PaymentStatus:    string(booking.PaymentStatus),
		AlreadyConfirmed: alreadyConfirmed,
	}, nil
}

func (uc *UseCase) publishConfirmed(ctx context.Context, booking *domain.Booking, now time.Time) {
	label := ""
	if slot, err := uc.timeSlotRepo.GetByID(ctx, booking.TimeSlotID); err == nil {
		label = slot.Label()
	} else {
		uc.logger.Warn("ConfirmPayment: failed to get slot id=%d for notification: %v", booking.TimeSlotID, err)
	}

	event := domain.NewBookingEvent(domain.EventBookingConfirmed, booking, label, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to publish %s for %s: %v", event.Type, event.Reference, err)
	}
}
