package manage_packages

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	CreatePackage(ctx context.Context, actor domain.Actor, req *models.CreatePackageRequest) (*models.PackageResponse, error)
	UpdatePackage(ctx context.Context, actor domain.Actor, id int64, req *models.UpdatePackageRequest) (*models.PackageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
