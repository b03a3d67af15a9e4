package catalog

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	Create(ctx context.Context, p *domain.Package) (*domain.Package, error)
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Package, error)
	Update(ctx context.Context, p *domain.Package) error
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.TimeSlot, error)
	Update(ctx context.Context, slot *domain.TimeSlot) error
}

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error)
	ListFrom(ctx context.Context, from time.Time) ([]*domain.Holiday, error)
	Deactivate(ctx context.Context, id int64) error
}

// Cache кэш публичных списков каталога
type Cache interface {
	GetPackages(ctx context.Context) ([]*domain.Package, error)
	SetPackages(ctx context.Context, packages []*domain.Package) error
	GetTimeSlots(ctx context.Context) ([]*domain.TimeSlot, error)
	SetTimeSlots(ctx context.Context, slots []*domain.TimeSlot) error
	InvalidatePackages(ctx context.Context) error
	InvalidateTimeSlots(ctx context.Context) error
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
