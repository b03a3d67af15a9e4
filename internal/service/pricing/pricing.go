// Package pricing computes booking totals from a per-child price and an optional voucher.
// Everything here is pure: no I/O, no clock, no voucher state changes.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// moneyPlaces денежные суммы храним с точностью до копеек
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Quote result of a price computation
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal // фактически применённая скидка, не больше Subtotal
	Total    decimal.Decimal
}

// ComputeTotal returns subtotal = unitPrice × childCount, the discount granted by voucher and
// total = max(subtotal − discount, 0). voucher may be nil. The caller validates the voucher beforehand.
func ComputeTotal(unitPrice decimal.Decimal, childCount int, voucher *domain.Voucher) (Quote, error) {
	if childCount <= 0 {
		return Quote{}, fmt.Errorf("%w: child count must be positive, got %d", ErrInvalidInput, childCount)
	}
	if unitPrice.IsNegative() {
		return Quote{}, fmt.Errorf("%w: unit price must not be negative", ErrInvalidInput)
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(childCount))).Round(moneyPlaces)

	discount, err := Discount(subtotal, voucher)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}, nil
}

// Discount скидка ваучера для подытога, ограниченная самим подытогом
func Discount(subtotal decimal.Decimal, voucher *domain.Voucher) (decimal.Decimal, error) {
	if voucher == nil {
		return decimal.Zero, nil
	}

	var discount decimal.Decimal
	switch voucher.DiscountType {
	case domain.DiscountPercentage:
		discount = subtotal.Mul(voucher.DiscountValue).Div(hundred).Round(moneyPlaces)
		if voucher.MaxDiscount != nil && discount.GreaterThan(*voucher.MaxDiscount) {
			discount = *voucher.MaxDiscount
		}
	case domain.DiscountFixed:
		discount = voucher.DiscountValue
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownDiscountType, voucher.DiscountType)
	}

	if discount.IsNegative() {
		return decimal.Zero, nil
	}
	if discount.GreaterThan(subtotal) {
		return subtotal, nil
	}
	return discount.Round(moneyPlaces), nil
}

// ToMinorUnits сумма в минимальных единицах валюты (пайсы, копейки) для платёжного шлюза
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
