package vouchers

import "errors"

var (
	// ErrVoucherNotFound возвращается, когда ваучер не найден
	ErrVoucherNotFound = errors.New("vouchers: voucher not found")

	// ErrVoucherExists возвращается, когда код уже занят
	ErrVoucherExists = errors.New("vouchers: voucher code already exists")

	// ErrAccessDenied возвращается, когда действие доступно только администратору
	ErrAccessDenied = errors.New("vouchers: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("vouchers: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("vouchers: internal error")
)
