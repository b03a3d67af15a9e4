package pricing

import "errors"

var (
	// ErrInvalidInput некорректная цена или количество детей
	ErrInvalidInput = errors.New("pricing: invalid input")

	// ErrUnknownDiscountType тип скидки не поддерживается
	ErrUnknownDiscountType = errors.New("pricing: unknown discount type")
)
