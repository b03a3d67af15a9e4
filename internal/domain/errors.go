package domain

import "errors"

var (
	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus неизвестный статус
	ErrUnknownStatus = errors.New("domain: unknown status")

	// ErrVoucherNotFound ваучер с таким кодом не существует
	ErrVoucherNotFound = errors.New("domain: voucher not found")

	// ErrVoucherInactive ваучер деактивирован
	ErrVoucherInactive = errors.New("domain: voucher is inactive")

	// ErrVoucherNotYetValid период действия ваучера ещё не начался
	ErrVoucherNotYetValid = errors.New("domain: voucher is not yet valid")

	// ErrVoucherExpired период действия ваучера закончился
	ErrVoucherExpired = errors.New("domain: voucher has expired")

	// ErrVoucherUsageLimit исчерпан лимит использований
	ErrVoucherUsageLimit = errors.New("domain: voucher usage limit exceeded")
)

// VoucherRejectionReason короткая причина отказа для клиента
func VoucherRejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrVoucherNotFound):
		return "not found"
	case errors.Is(err, ErrVoucherInactive):
		return "inactive"
	case errors.Is(err, ErrVoucherNotYetValid):
		return "not yet valid"
	case errors.Is(err, ErrVoucherExpired):
		return "expired"
	case errors.Is(err, ErrVoucherUsageLimit):
		return "usage limit exceeded"
	}
	return "invalid"
}
