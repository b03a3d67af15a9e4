package list_enquiries

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/enquiries/models"
)

type EnquiryService interface {
	List(ctx context.Context, actor domain.Actor) ([]*models.EnquiryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
