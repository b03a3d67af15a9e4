package manage_holidays

import (
	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

// CreateHolidayRequest HTTP request model
type CreateHolidayRequest struct {
	Date string `json:"date"` // "2025-12-31"
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) ToServiceRequest() (*models.CreateHolidayRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &models.CreateHolidayRequest{Date: date, Name: r.Name}, nil
}
