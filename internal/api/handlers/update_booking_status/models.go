package update_booking_status

import (
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

func (r *UpdateStatusRequest) ToServiceRequest(actor domain.Actor) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Actor:  actor,
		Status: r.Status,
		Reason: r.Reason,
	}
}
