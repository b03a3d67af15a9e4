package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageId must be positive", ErrInvalidInput)
	}
	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Children <= 0 {
		return fmt.Errorf("%w: number of children must be positive", ErrInvalidInput)
	}
	if req.Children > domain.MaxChildrenPerBooking {
		return fmt.Errorf("%w: at most %d children per booking", ErrInvalidInput, domain.MaxChildrenPerBooking)
	}
	if len(req.ChildrenAges) != req.Children {
		return fmt.Errorf("%w: %d ages given for %d children", ErrInvalidInput, len(req.ChildrenAges), req.Children)
	}
	for i, age := range req.ChildrenAges {
		if age < 0 || age > domain.MaxChildAge {
			return fmt.Errorf("%w: child #%d age %d is out of range 0..%d", ErrInvalidInput, i+1, age, domain.MaxChildAge)
		}
	}

	name := strings.TrimSpace(req.ContactName)
	if name == "" || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}
	if isBlank(req.ContactEmail) && isBlank(req.ContactPhone) {
		return fmt.Errorf("%w: contact email or phone is required", ErrInvalidInput)
	}
	if req.ContactEmail != nil && !isBlank(req.ContactEmail) && !strings.Contains(*req.ContactEmail, "@") {
		return fmt.Errorf("%w: contact email is malformed", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.AdminCreated && req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceDays int) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	if advanceDays <= 0 {
		advanceDays = domain.DefaultAdvanceBookingDays
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceDays)
	if dateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceDays)
	}

	return nil
}

// validateSlotNotStarted на сегодняшнюю дату нельзя забронировать уже начавшийся слот
func validateSlotNotStarted(bookingDate time.Time, slot *domain.TimeSlot, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}
	if !types.NewTimeString(now).IsBefore(slot.StartTime) {
		return fmt.Errorf("%w: slot started at %s", ErrSlotAlreadyStarted, slot.StartTime)
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
