package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType тип скидки ваучера
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Voucher discount code with a validity window and an optional usage limit
type Voucher struct {
	ID            int64
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MaxDiscount   *decimal.Decimal // только для percentage
	ValidFrom     time.Time
	ValidTill     time.Time
	UsageLimit    *int
	UsedCount     int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate проверяет применимость ваучера на момент now.
// Границы окна включительные: [ValidFrom, ValidTill].
func (v *Voucher) Validate(now time.Time) error {
	if !v.IsActive {
		return ErrVoucherInactive
	}
	if now.Before(v.ValidFrom) {
		return ErrVoucherNotYetValid
	}
	if now.After(v.ValidTill) {
		return ErrVoucherExpired
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return ErrVoucherUsageLimit
	}
	return nil
}

// NormalizeVoucherCode коды хранятся в верхнем регистре без пробелов по краям
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// VoucherRedemption факт применения ваучера к бронированию (одна запись на бронирование)
type VoucherRedemption struct {
	ID         int64
	VoucherID  int64
	BookingID  int64
	Discount   decimal.Decimal
	RedeemedAt time.Time
}
