package check_availability

import "errors"

var (
	// ErrInvalidInput некорректные входные данные (дата, слот, количество детей)
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal ошибка хранилища
	ErrInternal = errors.New("check_availability: internal error")
)
