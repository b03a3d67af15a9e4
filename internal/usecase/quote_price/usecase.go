package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	packageRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/playpackage"
	"github.com/m04kA/PlayZone-BookingService/internal/service/pricing"
)

// UseCase предварительный расчёт цены. Счётчик использований ваучера не меняется.
type UseCase struct {
	packageRepo PackageRepository
	vouchers    VoucherLookup
	logger      Logger
}

func NewUseCase(packageRepo PackageRepository, vouchers VoucherLookup, logger Logger) *UseCase {
	return &UseCase{
		packageRepo: packageRepo,
		vouchers:    vouchers,
		logger:      logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.PackageID <= 0 {
		return nil, fmt.Errorf("%w: packageId must be positive", ErrInvalidInput)
	}
	if req.Children <= 0 || req.Children > domain.MaxChildrenPerBooking {
		return nil, fmt.Errorf("%w: children must be in 1..%d", ErrInvalidInput, domain.MaxChildrenPerBooking)
	}

	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("QuotePrice: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %w", ErrInternal, err)
	}
	if !pkg.IsActive {
		return nil, ErrPackageNotFound
	}

	var (
		voucher *domain.Voucher
		verdict *VoucherVerdict
	)
	if req.VoucherCode != nil && *req.VoucherCode != "" {
		code := domain.NormalizeVoucherCode(*req.VoucherCode)
		verdict = &VoucherVerdict{Code: code, Valid: true}

		voucher, err = uc.vouchers.GetValid(ctx, code)
		if err != nil {
			reason := domain.VoucherRejectionReason(err)
			if reason == "invalid" {
				uc.logger.Error("QuotePrice: failed to check voucher %s: %v", code, err)
				return nil, fmt.Errorf("%w: failed to check voucher: %w", ErrInternal, err)
			}
			verdict.Valid, verdict.Reason = false, reason
			voucher = nil
		}
	}

	quote, err := pricing.ComputeTotal(pkg.Price, req.Children, voucher)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("QuotePrice: package=%d, children=%d, subtotal=%s, discount=%s, total=%s",
		pkg.ID, req.Children, quote.Subtotal.StringFixed(2), quote.Discount.StringFixed(2), quote.Total.StringFixed(2))

	return &Response{
		PackageID: pkg.ID,
		Children:  req.Children,
		UnitPrice: pkg.Price,
		Subtotal:  quote.Subtotal,
		Discount:  quote.Discount,
		Total:     quote.Total,
		Voucher:   verdict,
	}, nil
}
