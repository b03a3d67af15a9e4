package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInvalidSignature подпись платежа не совпала
	ErrInvalidSignature = errors.New("confirm_payment: invalid payment signature")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrAccessDenied бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("confirm_payment: access denied")

	// ErrOrderMismatch заказ не относится к этому бронированию
	ErrOrderMismatch = errors.New("confirm_payment: order does not belong to booking")

	// ErrInvalidStatus бронирование нельзя подтвердить из текущего статуса
	ErrInvalidStatus = errors.New("confirm_payment: booking cannot be confirmed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
