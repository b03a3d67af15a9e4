package get_day_availability

import (
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
)

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	Date   string     `json:"date"`
	Closed bool       `json:"closed"`
	Reason string     `json:"reason,omitempty"`
	Slots  []SlotInfo `json:"slots"`
}

// SlotInfo остаток мест в слоте
type SlotInfo struct {
	TimeSlotID  int64  `json:"timeSlotId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxCapacity int    `json:"maxCapacity"`
	Booked      int    `json:"booked"`
	Remaining   int    `json:"remaining"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.DayResponse) *DayAvailabilityResponse {
	slots := make([]SlotInfo, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotInfo{
			TimeSlotID:  s.TimeSlotID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			MaxCapacity: s.MaxCapacity,
			Booked:      s.Booked,
			Remaining:   s.Remaining,
		}
	}

	return &DayAvailabilityResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Closed: resp.Closed,
		Reason: resp.Reason,
		Slots:  slots,
	}
}
