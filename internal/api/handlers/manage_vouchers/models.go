package manage_vouchers

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/service/vouchers/models"
)

// CreateVoucherRequest HTTP request model
type CreateVoucherRequest struct {
	Code          string           `json:"code"`
	DiscountType  string           `json:"discountType"` // percentage | fixed
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	ValidFrom     string           `json:"validFrom"` // "2025-10-01"
	ValidTill     string           `json:"validTill"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
}

func (r *CreateVoucherRequest) ToServiceRequest() (*models.CreateVoucherRequest, error) {
	from, err := handlers.ParseDate(r.ValidFrom)
	if err != nil {
		return nil, err
	}
	till, err := handlers.ParseDate(r.ValidTill)
	if err != nil {
		return nil, err
	}
	return &models.CreateVoucherRequest{
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MaxDiscount:   r.MaxDiscount,
		ValidFrom:     from,
		ValidTill:     till,
		UsageLimit:    r.UsageLimit,
	}, nil
}
