package get_packages

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListPackages(ctx context.Context, actor domain.Actor, includeInactive bool) ([]models.PackageResponse, error)
	GetPackage(ctx context.Context, actor domain.Actor, id int64) (*models.PackageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
