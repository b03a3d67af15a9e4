package voucher

import "errors"

var (
	// ErrVoucherNotFound ваучер не найден
	ErrVoucherNotFound = errors.New("voucher.repository: voucher not found")

	// ErrVoucherExists код уже занят
	ErrVoucherExists = errors.New("voucher.repository: voucher code already exists")

	// ErrUsageLimitReached счётчик использований упёрся в лимит
	ErrUsageLimitReached = errors.New("voucher.repository: usage limit reached")

	ErrBuildQuery = errors.New("voucher.repository: failed to build query")
	ErrExecQuery  = errors.New("voucher.repository: failed to execute query")
	ErrScanRow    = errors.New("voucher.repository: failed to scan row")
)
