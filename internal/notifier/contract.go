package notifier

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/integrations/mailer"
)

// EmailSender отправка письма
type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// WhatsAppSender отправка текстового сообщения
type WhatsAppSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Metrics счётчик отправок по каналам
type Metrics interface {
	IncNotification(channel, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
