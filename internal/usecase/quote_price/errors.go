package quote_price

import "errors"

var (
	ErrInvalidInput    = errors.New("quote_price: invalid input data")
	ErrPackageNotFound = errors.New("quote_price: package not found")
	ErrInternal        = errors.New("quote_price: internal error")
)
