package list_bookings

import (
	"fmt"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует фильтр из query параметров.
// date задаёт один день, startDate/endDate - период.
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status:           handlers.QueryString(r, "status"),
		IncludeCancelled: handlers.QueryBool(r, "includeCancelled"),
	}

	slotID, err := handlers.QueryInt64(r, "timeSlotId")
	if err != nil {
		return nil, fmt.Errorf("timeSlotId: %w", err)
	}
	req.TimeSlotID = slotID

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if date != nil {
		req.StartDate, req.EndDate = date, date
		return req, nil
	}

	if req.StartDate, err = handlers.QueryDate(r, "startDate"); err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	if req.EndDate, err = handlers.QueryDate(r, "endDate"); err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	return req, nil
}
