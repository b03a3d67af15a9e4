package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotAlreadyStarted возвращается при бронировании на сегодня уже начавшегося слота
	ErrSlotAlreadyStarted = errors.New("create_booking: time slot has already started")

	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrPackageNotBookable возвращается для неактивного пакета или пакета дня рождения
	ErrPackageNotBookable = errors.New("create_booking: package is not available for booking")

	// ErrSlotNotAvailable возвращается, когда дата закрыта, слот выключен или не хватает мест
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidVoucher возвращается при отказе ваучера; причина в обёрнутой domain.ErrVoucher*
	ErrInvalidVoucher = errors.New("create_booking: voucher rejected")

	// ErrAccessDenied административное бронирование без роли администратора
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrPaymentUnavailable бронирование создано, но заказ в шлюзе не создан
	ErrPaymentUnavailable = errors.New("create_booking: payment gateway unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
