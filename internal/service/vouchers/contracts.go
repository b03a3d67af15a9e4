package vouchers

import (
	"context"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// VoucherRepository интерфейс репозитория ваучеров
type VoucherRepository interface {
	Create(ctx context.Context, v *domain.Voucher) (*domain.Voucher, error)
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	List(ctx context.Context) ([]*domain.Voucher, error)
	Deactivate(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, voucherID int64) error
	CreateRedemption(ctx context.Context, redemption *domain.VoucherRedemption) (bool, error)
	DeleteRedemption(ctx context.Context, bookingID int64) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncVoucherRedemption()
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
