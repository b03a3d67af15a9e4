package manage_time_slots

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateTimeSlot(ctx context.Context, actor domain.Actor, req *models.CreateTimeSlotRequest) (*models.TimeSlotResponse, error)
	UpdateTimeSlot(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateTimeSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
