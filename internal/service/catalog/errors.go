package catalog

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("catalog: package not found")

	// ErrTimeSlotNotFound возвращается, когда слот не найден
	ErrTimeSlotNotFound = errors.New("catalog: time slot not found")

	// ErrHolidayNotFound возвращается, когда выходной не найден
	ErrHolidayNotFound = errors.New("catalog: holiday not found")

	// ErrHolidayExists выходной на эту дату уже заведён
	ErrHolidayExists = errors.New("catalog: holiday already exists for this date")

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = errors.New("catalog: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
