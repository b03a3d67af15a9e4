package manage_parties

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties/models"
)

type PartyService interface {
	List(ctx context.Context, actor domain.Actor, status *string) ([]*models.PartyResponse, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.PartyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
