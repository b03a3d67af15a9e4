package parties

import "errors"

var (
	// ErrPartyNotFound возвращается, когда заявка не найдена
	ErrPartyNotFound = errors.New("parties: party not found")

	// ErrPackageNotFound пакет не найден
	ErrPackageNotFound = errors.New("parties: package not found")

	// ErrNotBirthdayPackage пакет не предназначен для дня рождения или неактивен
	ErrNotBirthdayPackage = errors.New("parties: package is not an active birthday package")

	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("parties: invalid status transition")

	// ErrAccessDenied возвращается, когда у пользователя нет прав
	ErrAccessDenied = errors.New("parties: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("parties: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("parties: internal error")
)
