package get_time_slots

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListTimeSlots(ctx context.Context, actor domain.Actor, includeInactive bool) ([]models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
