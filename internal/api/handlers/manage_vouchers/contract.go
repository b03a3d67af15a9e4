package manage_vouchers

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/vouchers/models"
)

type VoucherService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateVoucherRequest) (*models.VoucherResponse, error)
	List(ctx context.Context, actor domain.Actor) ([]models.VoucherResponse, error)
	Deactivate(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
