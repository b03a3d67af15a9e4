package get_day_availability

import (
	"context"

	checkAvailability "github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
)

type DayAvailabilityUseCase interface {
	ExecuteDay(ctx context.Context, req *checkAvailability.DayRequest) (*checkAvailability.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
