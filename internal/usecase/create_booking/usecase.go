package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	packageRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/playpackage"
	timeslotRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/PlayZone-BookingService/internal/service/pricing"
)

const (
	PaymentModeOnline = "online"
	PaymentModeVenue  = "venue"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	packageRepo  PackageRepository
	timeSlotRepo TimeSlotRepository
	availability AvailabilityChecker
	vouchers     VoucherService
	gateway      PaymentGateway
	publisher    EventPublisher
	metrics      Metrics
	txManager    TransactionManager
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	packageRepo PackageRepository,
	timeSlotRepo TimeSlotRepository,
	availability AvailabilityChecker,
	vouchers VoucherService,
	gateway PaymentGateway,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		packageRepo:  packageRepo,
		timeSlotRepo: timeSlotRepo,
		availability: availability,
		vouchers:     vouchers,
		gateway:      gateway,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка мест и вставка идут в одной сериализуемой транзакции с блокировкой строки слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d, admin=%t, package=%d, slot=%d, date=%s, children=%d",
		req.Actor.UserID, req.AdminCreated, req.PackageID, req.TimeSlotID, req.Date.Format(domain.DateFormat), req.Children)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if req.AdminCreated && !req.Actor.IsAdmin() {
		uc.logger.Warn("CreateBooking: user id=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	// Дата бронирования календарная, поэтому "сейчас" берём по часам площадки
	now := uc.timeProvider.Now().In(uc.location())

	// 2. Дата
	if err := validateDate(req.Date, now, uc.cfg.AdvanceDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Пакет
	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateBooking: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %w", ErrInternal, err)
	}
	if !pkg.IsActive || pkg.Type == domain.PackageBirthday {
		uc.logger.Warn("CreateBooking: package id=%d (type=%s, active=%t) is not bookable", pkg.ID, pkg.Type, pkg.IsActive)
		return nil, ErrPackageNotBookable
	}

	// 4. Слот: на сегодня нельзя бронировать уже начавшийся
	slot, err := uc.timeSlotRepo.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			uc.logger.Warn("CreateBooking: time slot id=%d not found", req.TimeSlotID)
			return nil, fmt.Errorf("%w: time slot not found", ErrSlotNotAvailable)
		}
		uc.logger.Error("CreateBooking: failed to get time slot id=%d: %v", req.TimeSlotID, err)
		return nil, fmt.Errorf("%w: failed to get time slot: %w", ErrInternal, err)
	}
	if err := validateSlotNotStarted(req.Date, slot, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Ваучер: недействительный отклоняет бронирование, а не игнорируется
	var voucher *domain.Voucher
	if req.VoucherCode != nil && *req.VoucherCode != "" {
		voucher, err = uc.vouchers.GetValid(ctx, *req.VoucherCode)
		if err != nil {
			if reason := domain.VoucherRejectionReason(err); reason != "invalid" {
				uc.logger.Warn("CreateBooking: voucher %s rejected: %s", *req.VoucherCode, reason)
				return nil, fmt.Errorf("%w: %w", ErrInvalidVoucher, err)
			}
			uc.logger.Error("CreateBooking: failed to get voucher %s: %v", *req.VoucherCode, err)
			return nil, fmt.Errorf("%w: failed to get voucher: %w", ErrInternal, err)
		}
	}

	// 6. Стоимость
	quote, err := pricing.ComputeTotal(pkg.Price, req.Children, voucher)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute total: %v", err)
		return nil, fmt.Errorf("%w: failed to compute total: %w", ErrInternal, err)
	}

	booking := uc.buildBooking(req, quote, voucher)

	// 7. Проверка мест, вставка и погашение ваучера в сериализуемой транзакции
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		availability, err := uc.availability.Check(txCtx, req.Date, req.TimeSlotID, req.Children)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if !availability.Available {
			uc.logger.Warn("CreateBooking: slot id=%d on %s not available: %s (remaining=%d, requested=%d)",
				req.TimeSlotID, req.Date.Format(domain.DateFormat), availability.Reason, availability.Remaining, req.Children)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, availability.Reason)
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		if created.Status == domain.StatusConfirmed {
			if err := uc.vouchers.Redeem(txCtx, created); err != nil {
				if errors.Is(err, domain.ErrVoucherUsageLimit) {
					return fmt.Errorf("%w: %w", ErrInvalidVoucher, err)
				}
				return fmt.Errorf("%w: failed to redeem voucher: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncBooking(string(result.Status))
	uc.logger.Info("CreateBooking: created booking id=%d status=%s total=%s",
		result.ID, result.Status, result.TotalAmount.StringFixed(2))

	response := newResponse(result, slot)

	// 8. Заказ в платёжном шлюзе только для ожидающих оплаты
	if result.Status == domain.StatusPending {
		order, err := uc.createPaymentOrder(ctx, result)
		if err != nil {
			return nil, err
		}
		response.Payment = order
		uc.publish(ctx, domain.NewBookingEvent(domain.EventBookingPending, result, slot.Label(), now))
		return response, nil
	}

	uc.publish(ctx, domain.NewBookingEvent(domain.EventBookingConfirmed, result, slot.Label(), now))
	return response, nil
}

func (uc *UseCase) location() *time.Location {
	if uc.cfg.Location == nil {
		return time.UTC
	}
	return uc.cfg.Location
}

// buildBooking определяет начальный статус: оплата онлайн оставляет pending,
// остальные сценарии сразу подтверждают бронирование
func (uc *UseCase) buildBooking(req *Request, quote pricing.Quote, voucher *domain.Voucher) *domain.Booking {
	userID := req.Actor.UserID
	if req.AdminCreated && req.UserID != nil {
		userID = *req.UserID
	}

	booking := &domain.Booking{
		UserID:           userID,
		PackageID:        req.PackageID,
		TimeSlotID:       req.TimeSlotID,
		BookingDate:      req.Date,
		NumberOfChildren: req.Children,
		ChildrenAges:     req.ChildrenAges,
		Subtotal:         quote.Subtotal,
		DiscountAmount:   quote.Discount,
		TotalAmount:      quote.Total,
		ContactName:      req.ContactName,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		Notes:            req.Notes,
	}
	if voucher != nil {
		booking.VoucherID = &voucher.ID
		booking.VoucherCode = &voucher.Code
	}

	switch {
	case req.AdminCreated:
		booking.Status, booking.PaymentStatus = domain.StatusConfirmed, domain.PaymentOffline
	case quote.Total.IsZero():
		booking.Status, booking.PaymentStatus = domain.StatusConfirmed, domain.PaymentNotRequired
	case uc.cfg.PaymentMode == PaymentModeVenue:
		booking.Status, booking.PaymentStatus = domain.StatusConfirmed, domain.PaymentOffline
	default:
		booking.Status, booking.PaymentStatus = domain.StatusPending, domain.PaymentUnpaid
	}
	return booking
}

// createPaymentOrder создаёт заказ и сохраняет его id. При ошибке бронирование остаётся pending.
func (uc *UseCase) createPaymentOrder(ctx context.Context, booking *domain.Booking) (*PaymentOrder, error) {
	amount := pricing.ToMinorUnits(booking.TotalAmount)
	receipt := uuid.NewString()

	order, err := uc.gateway.CreateOrder(ctx, amount, uc.cfg.Currency, receipt)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create payment order for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: booking %s: %w", ErrPaymentUnavailable, booking.Reference(), err)
	}

	booking.PaymentOrderID = &order.ID
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		uc.logger.Error("CreateBooking: failed to store order id=%s for booking id=%d: %v", order.ID, booking.ID, err)
		return nil, fmt.Errorf("%w: failed to store payment order: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: payment order %s created for booking id=%d, amount=%d %s",
		order.ID, booking.ID, amount, uc.cfg.Currency)

	return &PaymentOrder{
		OrderID:     order.ID,
		AmountMinor: amount,
		Currency:    uc.cfg.Currency,
		KeyID:       uc.gateway.KeyID(),
	}, nil
}

// publish уведомления не влияют на результат операции
func (uc *UseCase) publish(ctx context.Context, event domain.NotificationEvent) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for %s: %v", event.Type, event.Reference, err)
	}
}
