package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/payment"
	"github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// AvailabilityChecker калькулятор доступности; вызывается внутри транзакции
type AvailabilityChecker interface {
	Check(ctx context.Context, date time.Time, timeSlotID int64, children int) (check_availability.Result, error)
}

// VoucherService поиск и погашение ваучеров
type VoucherService interface {
	GetValid(ctx context.Context, code string) (*domain.Voucher, error)
	Redeem(ctx context.Context, booking *domain.Booking) error
}

// PaymentGateway создание заказа в платёжном шлюзе
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*payment.Order, error)
	KeyID() string
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
