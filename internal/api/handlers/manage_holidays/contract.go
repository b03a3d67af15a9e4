package manage_holidays

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListUpcomingHolidays(ctx context.Context) ([]models.HolidayResponse, error)
	CreateHoliday(ctx context.Context, actor domain.Actor, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
