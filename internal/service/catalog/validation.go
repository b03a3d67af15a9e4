package catalog

import (
	"fmt"
	"strings"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

func validatePackage(p *domain.Package) error {
	if strings.TrimSpace(p.Name) == "" || len(p.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !p.Type.IsValid() {
		return fmt.Errorf("%w: unknown package type %q", ErrInvalidInput, p.Type)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.DurationMinutes <= 0 || p.DurationMinutes > domain.MaxPackageDurationMinutes {
		return fmt.Errorf("%w: duration must be in 1..%d minutes", ErrInvalidInput, domain.MaxPackageDurationMinutes)
	}
	return nil
}

func validateTimeSlot(s *domain.TimeSlot) error {
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %w", ErrInvalidInput, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %w", ErrInvalidInput, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if s.MaxCapacity < domain.MinSlotCapacity || s.MaxCapacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: maxCapacity must be in %d..%d", ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

func parseTime(field, value string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(value)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: %s: %w", ErrInvalidInput, field, err)
	}
	return t, nil
}
