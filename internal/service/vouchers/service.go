package vouchers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	voucherRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/voucher"
	"github.com/m04kA/PlayZone-BookingService/internal/service/vouchers/models"
)

// Service сервис ваучеров: администрирование, проверка и погашение
type Service struct {
	voucherRepo  VoucherRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewService(voucherRepo VoucherRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		voucherRepo:  voucherRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает ваучер (только администратор)
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateVoucherRequest) (*models.VoucherResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("CreateVoucher: access denied for user=%d", actor.UserID)
		return nil, ErrAccessDenied
	}

	voucher, err := buildVoucher(req)
	if err != nil {
		s.logger.Warn("CreateVoucher: validation failed: %v", err)
		return nil, err
	}

	created, err := s.voucherRepo.Create(ctx, voucher)
	if err != nil {
		if errors.Is(err, voucherRepo.ErrVoucherExists) {
			s.logger.Warn("CreateVoucher: code=%s already exists", voucher.Code)
			return nil, ErrVoucherExists
		}
		s.logger.Error("CreateVoucher: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateVoucher: created voucher id=%d code=%s by admin=%d", created.ID, created.Code, actor.UserID)
	return models.FromDomainVoucher(created), nil
}

// List все ваучеры (только администратор)
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]models.VoucherResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	vouchers, err := s.voucherRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListVouchers: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainVoucherList(vouchers), nil
}

// Deactivate выключает ваучер (только администратор)
func (s *Service) Deactivate(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}

	if err := s.voucherRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, voucherRepo.ErrVoucherNotFound) {
			return ErrVoucherNotFound
		}
		s.logger.Error("DeactivateVoucher: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeactivateVoucher: voucher id=%d deactivated by admin=%d", id, actor.UserID)
	return nil
}

// GetValid ищет ваучер по коду и проверяет его на текущий момент.
// Отказ возвращается как domain.ErrVoucher* (в том числе domain.ErrVoucherNotFound).
func (s *Service) GetValid(ctx context.Context, code string) (*domain.Voucher, error) {
	normalized := domain.NormalizeVoucherCode(code)

	voucher, err := s.voucherRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, voucherRepo.ErrVoucherNotFound) {
			return nil, domain.ErrVoucherNotFound
		}
		s.logger.Error("GetValidVoucher: repository error for code=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: GetValid - repository error: %w", ErrInternal, err)
	}

	if err := voucher.Validate(s.timeProvider.Now()); err != nil {
		s.logger.Info("GetValidVoucher: code=%s rejected: %v", normalized, err)
		return nil, err
	}
	return voucher, nil
}

// Redeem погашает ваучер бронирования ровно один раз.
// Должен вызываться внутри транзакции вместе со сменой статуса: повторный вызов для того же
// бронирования ничего не меняет, исчерпанный лимит возвращает domain.ErrVoucherUsageLimit
// и не оставляет записи о погашении.
func (s *Service) Redeem(ctx context.Context, booking *domain.Booking) error {
	if booking.VoucherID == nil {
		return nil
	}

	inserted, err := s.voucherRepo.CreateRedemption(ctx, &domain.VoucherRedemption{
		VoucherID: *booking.VoucherID,
		BookingID: booking.ID,
		Discount:  booking.DiscountAmount,
	})
	if err != nil {
		s.logger.Error("Redeem: failed to record redemption for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: Redeem - create redemption: %w", ErrInternal, err)
	}
	if !inserted {
		s.logger.Info("Redeem: voucher id=%d already redeemed for booking id=%d", *booking.VoucherID, booking.ID)
		return nil
	}

	if err := s.voucherRepo.IncrementUsage(ctx, *booking.VoucherID); err != nil {
		if errors.Is(err, voucherRepo.ErrUsageLimitReached) {
			s.logger.Warn("Redeem: voucher id=%d usage limit reached for booking id=%d", *booking.VoucherID, booking.ID)
			// Погашение без увеличения счётчика не оставляем
			if err := s.voucherRepo.DeleteRedemption(ctx, booking.ID); err != nil {
				s.logger.Error("Redeem: failed to drop redemption for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: Redeem - delete redemption: %w", ErrInternal, err)
			}
			return domain.ErrVoucherUsageLimit
		}
		s.logger.Error("Redeem: failed to increment usage of voucher id=%d: %v", *booking.VoucherID, err)
		return fmt.Errorf("%w: Redeem - increment usage: %w", ErrInternal, err)
	}

	s.metrics.IncVoucherRedemption()
	s.logger.Info("Redeem: voucher id=%d redeemed for booking id=%d", *booking.VoucherID, booking.ID)
	return nil
}
