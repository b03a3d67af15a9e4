package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ListStalePending(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TimeSlotRepository нужен для подписи слота в уведомлениях
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// VoucherRedeemer погашение ваучера при подтверждении администратором
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
