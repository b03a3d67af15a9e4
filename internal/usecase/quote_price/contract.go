package quote_price

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

// VoucherLookup только чтение ваучера, без погашения
type VoucherLookup interface {
	GetValid(ctx context.Context, code string) (*domain.Voucher, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
