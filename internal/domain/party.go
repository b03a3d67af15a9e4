package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

// Party birthday party request. Lives apart from slot bookings and does not consume slot capacity.
type Party struct {
	ID           int64
	UserID       int64
	PackageID    int64
	PartyDate    time.Time
	StartTime    types.TimeString
	Guests       int
	ChildName    string
	ChildAge     int
	Theme        *string
	Status       BookingStatus
	ContactName  string
	ContactEmail *string
	ContactPhone *string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transition тот же автомат статусов, что и у бронирований
func (p *Party) Transition(to BookingStatus, now time.Time) error {
	if !p.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	p.UpdatedAt = now
	return nil
}

func (p *Party) Reference() string {
	return fmt.Sprintf("BD-%06d", p.ID)
}
