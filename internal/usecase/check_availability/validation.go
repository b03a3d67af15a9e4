package check_availability

import (
	"fmt"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotId must be positive", ErrInvalidInput)
	}
	if req.Children <= 0 {
		return fmt.Errorf("%w: number of children must be positive", ErrInvalidInput)
	}
	if req.Children > domain.MaxChildrenPerBooking {
		return fmt.Errorf("%w: at most %d children per booking", ErrInvalidInput, domain.MaxChildrenPerBooking)
	}
	return nil
}
