package vouchers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/vouchers/models"
)

var maxPercentage = decimal.NewFromInt(domain.MaxPercentageDiscount)

func buildVoucher(req *models.CreateVoucherRequest) (*domain.Voucher, error) {
	code := domain.NormalizeVoucherCode(req.Code)
	if code == "" || len(code) > domain.MaxVoucherCodeLength {
		return nil, fmt.Errorf("%w: code must be 1..%d characters", ErrInvalidInput, domain.MaxVoucherCodeLength)
	}

	discountType := domain.DiscountType(req.DiscountType)
	if !discountType.IsValid() {
		return nil, fmt.Errorf("%w: discountType must be percentage or fixed", ErrInvalidInput)
	}
	if !req.DiscountValue.IsPositive() {
		return nil, fmt.Errorf("%w: discountValue must be positive", ErrInvalidInput)
	}
	if discountType == domain.DiscountPercentage && req.DiscountValue.GreaterThan(maxPercentage) {
		return nil, fmt.Errorf("%w: percentage discount must not exceed 100", ErrInvalidInput)
	}
	if req.MaxDiscount != nil {
		if discountType != domain.DiscountPercentage {
			return nil, fmt.Errorf("%w: maxDiscount applies to percentage vouchers only", ErrInvalidInput)
		}
		if !req.MaxDiscount.IsPositive() {
			return nil, fmt.Errorf("%w: maxDiscount must be positive", ErrInvalidInput)
		}
	}
	if req.ValidFrom.IsZero() || req.ValidTill.IsZero() || !req.ValidFrom.Before(req.ValidTill) {
		return nil, fmt.Errorf("%w: validFrom must be before validTill", ErrInvalidInput)
	}
	if req.UsageLimit != nil && *req.UsageLimit < 1 {
		return nil, fmt.Errorf("%w: usageLimit must be at least 1", ErrInvalidInput)
	}

	return &domain.Voucher{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     req.ValidFrom,
		ValidTill:     req.ValidTill,
		UsageLimit:    req.UsageLimit,
		IsActive:      true,
	}, nil
}
