package parties

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// PartyRepository интерфейс репозитория заявок на день рождения
type PartyRepository interface {
	Create(ctx context.Context, p *domain.Party) (*domain.Party, error)
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Party, error)
	UpdateStatus(ctx context.Context, p *domain.Party) error
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
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
