package whatsapp

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе API
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")

	// ErrUnauthorized токен недействителен
	ErrUnauthorized = errors.New("whatsapp client: unauthorized")

	// ErrInvalidRecipient пустой или некорректный номер
	ErrInvalidRecipient = errors.New("whatsapp client: invalid recipient")
)
