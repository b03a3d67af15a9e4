package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// CreateVoucherRequest запрос на создание ваучера
type CreateVoucherRequest struct {
	Code          string           `json:"code"`
	DiscountType  string           `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	ValidFrom     time.Time        `json:"validFrom"`
	ValidTill     time.Time        `json:"validTill"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
}

// VoucherResponse ответ с данными ваучера
type VoucherResponse struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	DiscountType  string           `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	ValidFrom     time.Time        `json:"validFrom"`
	ValidTill     time.Time        `json:"validTill"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
	UsedCount     int              `json:"usedCount"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// FromDomainVoucher конвертирует domain модель в DTO
func FromDomainVoucher(v *domain.Voucher) *VoucherResponse {
	if v == nil {
		return nil
	}
	return &VoucherResponse{
		ID:            v.ID,
		Code:          v.Code,
		DiscountType:  string(v.DiscountType),
		DiscountValue: v.DiscountValue,
		MaxDiscount:   v.MaxDiscount,
		ValidFrom:     v.ValidFrom,
		ValidTill:     v.ValidTill,
		UsageLimit:    v.UsageLimit,
		UsedCount:     v.UsedCount,
		IsActive:      v.IsActive,
		CreatedAt:     v.CreatedAt,
	}
}

// FromDomainVoucherList конвертирует список
func FromDomainVoucherList(vouchers []*domain.Voucher) []VoucherResponse {
	result := make([]VoucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		result = append(result, *FromDomainVoucher(v))
	}
	return result
}
