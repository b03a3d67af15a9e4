package quote_price

import "github.com/shopspring/decimal"

// Request запрос предварительного расчёта
type Request struct {
	PackageID   int64
	Children    int
	VoucherCode *string
}

// VoucherVerdict результат проверки ваучера
type VoucherVerdict struct {
	Code   string
	Valid  bool
	Reason string // пусто, если Valid
}

// Response расчёт стоимости; при недействительном ваучере скидка не применяется
type Response struct {
	PackageID int64
	Children  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Voucher   *VoucherVerdict
}
