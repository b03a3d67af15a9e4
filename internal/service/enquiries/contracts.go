package enquiries

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// EnquiryRepository интерфейс репозитория обращений
type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry) (*domain.Enquiry, error)
	List(ctx context.Context, limit uint64) ([]*domain.Enquiry, error)
}

// EventPublisher публикация уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
