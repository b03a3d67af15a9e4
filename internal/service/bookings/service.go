package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PlayZone-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeSlotRepo TimeSlotRepository
	vouchers     VoucherRedeemer
	publisher    EventPublisher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeSlotRepo TimeSlotRepository,
	vouchers VoucherRedeemer,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeSlotRepo: timeSlotRepo,
		vouchers:     vouchers,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только своё бронирование, администратор любое.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccess(booking.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// List административный список бронирований с фильтрацией по периоду, слоту и статусу
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListBookings: admin=%d", actor.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.TimeSlotID != nil {
		logMsg += fmt.Sprintf(", slot=%d", *req.TimeSlotID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if !actor.IsAdmin() {
		s.logger.Warn("ListBookings: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Владелец может отменить своё pending или confirmed бронирование, администратор любое из них.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.Actor.UserID)

	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := s.timeProvider.Now()
	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !req.Actor.CanAccess(b.UserID) {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.Actor.UserID, bookingID)
			return ErrAccessDenied
		}

		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, b.Status)
			return ErrCannotCancel
		}

		if err := s.transition(txCtx, b, domain.StatusCancelled, reasonPtr(reason), now); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, booking, now)
	s.logger.Info("Cancel: booking id=%d cancelled by user=%d", bookingID, req.Actor.UserID)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus административная смена статуса по машине состояний.
// Подтверждение pending бронирования погашает ваучер.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateStatus: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	target, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := s.timeProvider.Now()
	var booking *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if err := s.transition(txCtx, b, target, req.Reason, now); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, booking, now)
	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// CancelStale отменяет неоплаченные бронирования старше ttl и освобождает их места.
// Возвращает количество отменённых.
func (s *Service) CancelStale(ctx context.Context, ttl time.Duration) (int, error) {
	now := s.timeProvider.Now()

	stale, err := s.bookingRepo.ListStalePending(ctx, now.Add(-ttl))
	if err != nil {
		s.logger.Error("CancelStale: failed to list stale bookings: %v", err)
		return 0, fmt.Errorf("%w: CancelStale - repository error: %w", ErrInternal, err)
	}

	cancelled := 0
	reason := domain.CancelReasonPaymentTimeout
	for _, candidate := range stale {
		var booking *domain.Booking

		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			b, err := s.getBooking(txCtx, "CancelStale", candidate.ID)
			if err != nil {
				return err
			}
			// Оплата могла пройти между выборкой и блокировкой
			if b.Status != domain.StatusPending {
				return nil
			}
			if err := s.transition(txCtx, b, domain.StatusCancelled, &reason, now); err != nil {
				return err
			}
			booking = b
			return nil
		})
		if err != nil {
			s.logger.Error("CancelStale: failed to cancel booking id=%d: %v", candidate.ID, err)
			continue
		}
		if booking == nil {
			continue
		}

		s.afterTransition(ctx, booking, now)
		cancelled++
	}

	if cancelled > 0 {
		s.logger.Info("CancelStale: cancelled %d of %d stale pending bookings", cancelled, len(stale))
	}
	return cancelled, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

// transition применяет переход и сохраняет бронирование; вызывается внутри транзакции
func (s *Service) transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, reason *string, now time.Time) error {
	from := b.Status
	if err := b.Transition(to, now); err != nil {
		s.logger.Warn("transition: booking id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if to == domain.StatusCancelled {
		b.CancellationReason = reason
	}
	// Подтверждение администратором без онлайн-оплаты
	if to == domain.StatusConfirmed && b.PaymentStatus == domain.PaymentUnpaid {
		b.PaymentStatus = domain.PaymentOffline
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("transition: failed to update booking id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: transition - repository error: %w", ErrInternal, err)
	}

	if to == domain.StatusConfirmed {
		if err := s.vouchers.Redeem(ctx, b); err != nil {
			if !errors.Is(err, domain.ErrVoucherUsageLimit) {
				return fmt.Errorf("%w: transition - redeem voucher: %w", ErrInternal, err)
			}
			s.logger.Warn("transition: voucher limit reached while confirming booking id=%d, discount kept", b.ID)
		}
	}

	return nil
}

// afterTransition метрики и уведомление после фиксации транзакции
func (s *Service) afterTransition(ctx context.Context, b *domain.Booking, now time.Time) {
	s.metrics.IncBooking(string(b.Status))

	var eventType domain.EventType
	switch b.Status {
	case domain.StatusConfirmed:
		eventType = domain.EventBookingConfirmed
	case domain.StatusCancelled:
		eventType = domain.EventBookingCancelled
	default:
		return
	}

	label := ""
	if slot, err := s.timeSlotRepo.GetByID(ctx, b.TimeSlotID); err == nil {
		label = slot.Label()
	} else {
		s.logger.Warn("afterTransition: failed to get slot id=%d: %v", b.TimeSlotID, err)
	}

	event := domain.NewBookingEvent(eventType, b, label, now)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("afterTransition: failed to publish %s for %s: %v", event.Type, event.Reference, err)
	}
}

func reasonPtr(reason string) *string {
	if reason == "" {
		return nil
	}
	return &reason
}
