package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TimeSlotRepository нужен для подписи слота в уведомлении
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// SignatureVerifier проверка подписи платёжного шлюза
type SignatureVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

// VoucherRedeemer погашение ваучера бронирования
type VoucherRedeemer interface {
	Redeem(ctx context.Context, booking *domain.Booking) error
}

// EventPublisher публикация событий для уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBooking(status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
