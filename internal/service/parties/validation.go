package parties

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties/models"
)

func validateCreate(req *models.CreatePartyRequest, now time.Time) error {
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageId is required", ErrInvalidInput)
	}
	if req.PartyDate.IsZero() {
		return fmt.Errorf("%w: partyDate is required", ErrInvalidInput)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	partyDay := time.Date(req.PartyDate.Year(), req.PartyDate.Month(), req.PartyDate.Day(), 0, 0, 0, 0, time.UTC)
	if partyDay.Before(today) {
		return fmt.Errorf("%w: partyDate is in the past", ErrInvalidInput)
	}
	if req.Guests < 1 || req.Guests > domain.MaxPartyGuests {
		return fmt.Errorf("%w: guests must be in 1..%d", ErrInvalidInput, domain.MaxPartyGuests)
	}
	if isBlank(req.ChildName) || len(req.ChildName) > domain.MaxNameLength {
		return fmt.Errorf("%w: childName is required", ErrInvalidInput)
	}
	if req.ChildAge < 0 || req.ChildAge > domain.MaxChildAge {
		return fmt.Errorf("%w: childAge must be in 0..%d", ErrInvalidInput, domain.MaxChildAge)
	}
	if isBlank(req.ContactName) || len(req.ContactName) > domain.MaxNameLength {
		return fmt.Errorf("%w: contactName is required", ErrInvalidInput)
	}
	if isBlank(ptrValue(req.ContactEmail)) && isBlank(ptrValue(req.ContactPhone)) {
		return fmt.Errorf("%w: contactEmail or contactPhone is required", ErrInvalidInput)
	}
	if req.ContactEmail != nil && !isBlank(*req.ContactEmail) && !strings.Contains(*req.ContactEmail, "@") {
		return fmt.Errorf("%w: contactEmail is malformed", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Theme != nil && len(*req.Theme) > domain.MaxNameLength {
		return fmt.Errorf("%w: theme is too long", ErrInvalidInput)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func ptrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
