package create_party

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/service/parties/models"
)

type PartyService interface {
	Create(ctx context.Context, req *models.CreatePartyRequest) (*models.PartyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
