package create_enquiry

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/service/enquiries/models"
)

type EnquiryService interface {
	Create(ctx context.Context, req *models.CreateEnquiryRequest) (*models.EnquiryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
