package quote_price

import (
	quotePrice "github.com/m04kA/PlayZone-BookingService/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	PackageID   int64   `json:"packageId"`
	Children    int     `json:"children"`
	VoucherCode *string `json:"voucherCode,omitempty"`
}

// QuoteResponse HTTP response model, суммы строкой с двумя знаками
type QuoteResponse struct {
	PackageID int64           `json:"packageId"`
	Children  int             `json:"children"`
	UnitPrice string          `json:"unitPrice"`
	Subtotal  string          `json:"subtotal"`
	Discount  string          `json:"discount"`
	Total     string          `json:"total"`
	Voucher   *VoucherVerdict `json:"voucher,omitempty"`
}

// VoucherVerdict результат проверки ваучера
type VoucherVerdict struct {
	Code   string `json:"code"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (r *QuoteRequest) ToUseCaseRequest() *quotePrice.Request {
	return &quotePrice.Request{
		PackageID:   r.PackageID,
		Children:    r.Children,
		VoucherCode: r.VoucherCode,
	}
}

func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	out := &QuoteResponse{
		PackageID: resp.PackageID,
		Children:  resp.Children,
		UnitPrice: resp.UnitPrice.StringFixed(2),
		Subtotal:  resp.Subtotal.StringFixed(2),
		Discount:  resp.Discount.StringFixed(2),
		Total:     resp.Total.StringFixed(2),
	}
	if resp.Voucher != nil {
		out.Voucher = &VoucherVerdict{
			Code:   resp.Voucher.Code,
			Valid:  resp.Voucher.Valid,
			Reason: resp.Voucher.Reason,
		}
	}
	return out
}
