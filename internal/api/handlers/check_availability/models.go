package check_availability

import (
	"fmt"
	"strconv"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date        string `json:"date"`
	TimeSlotID  int64  `json:"timeSlotId"`
	Available   bool   `json:"available"`
	Remaining   int    `json:"remaining"`
	MaxCapacity int    `json:"maxCapacity"`
	Reason      string `json:"reason,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, slotIDStr, childrenStr string) (*checkAvailability.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("timeSlotId: %w", err)
	}

	children := 1
	if childrenStr != "" {
		if children, err = strconv.Atoi(childrenStr); err != nil {
			return nil, fmt.Errorf("children: %w", err)
		}
	}

	return &checkAvailability.Request{
		Date:       date,
		TimeSlotID: slotID,
		Children:   children,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		TimeSlotID:  resp.TimeSlotID,
		Available:   resp.Available,
		Remaining:   resp.Remaining,
		MaxCapacity: resp.MaxCapacity,
		Reason:      resp.Reason,
	}
}
