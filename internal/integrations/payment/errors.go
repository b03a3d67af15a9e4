package payment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("payment client: invalid response")

	// ErrUnauthorized неверные ключи доступа к шлюзу
	ErrUnauthorized = errors.New("payment client: unauthorized")

	// ErrInvalidAmount сумма заказа должна быть положительной
	ErrInvalidAmount = errors.New("payment client: amount must be positive")
)
