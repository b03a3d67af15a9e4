package domain

import (
	"time"

	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

// TimeSlot recurring daily play session window with a children capacity
type TimeSlot struct {
	ID          int64
	StartTime   types.TimeString
	EndTime     types.TimeString
	MaxCapacity int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Label "10:00-12:00"
func (s *TimeSlot) Label() string {
	return s.StartTime.String() + "-" + s.EndTime.String()
}

// DurationMinutes длительность слота
func (s *TimeSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// SlotAvailability остаток мест в слоте на конкретную дату
type SlotAvailability struct {
	Slot      *TimeSlot
	Booked    int
	Remaining int
}
