package check_availability

import "github.com/m04kA/PlayZone-BookingService/internal/domain"

const (
	ReasonSlotNotFound         = "time slot not found"
	ReasonSlotInactive         = "time slot is not active"
	ReasonInsufficientCapacity = "not enough capacity"
)

// Evaluate decides availability of requested children for one (date, slot).
// holiday is the active holiday on the date (nil when open), slot is nil when it does not exist,
// booked is the children total of non-cancelled bookings on that date and slot.
// An active holiday short-circuits every other check.
func Evaluate(holiday *domain.Holiday, slot *domain.TimeSlot, booked, requested int) Result {
	if holiday != nil && holiday.IsActive {
		return Result{Available: false, Reason: holiday.Name}
	}
	if slot == nil {
		return Result{Available: false, Reason: ReasonSlotNotFound}
	}
	if !slot.IsActive {
		return Result{Available: false, MaxCapacity: slot.MaxCapacity, Reason: ReasonSlotInactive}
	}

	remaining := Remaining(slot.MaxCapacity, booked)
	if remaining >= requested {
		return Result{Available: true, Remaining: remaining, MaxCapacity: slot.MaxCapacity}
	}
	return Result{
		Available:   false,
		Remaining:   remaining,
		MaxCapacity: slot.MaxCapacity,
		Reason:      ReasonInsufficientCapacity,
	}
}

// Remaining свободные места, не меньше нуля
func Remaining(maxCapacity, booked int) int {
	if booked >= maxCapacity {
		return 0
	}
	return maxCapacity - booked
}
