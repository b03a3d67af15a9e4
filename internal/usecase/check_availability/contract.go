package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	GetActiveByDate(ctx context.Context, date time.Time) (*domain.Holiday, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumChildrenForSlot(ctx context.Context, date time.Time, timeSlotID int64) (int, error)
	SumChildrenByDate(ctx context.Context, date time.Time) (map[int64]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
