package create_party

import (
	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties/models"
)

// CreatePartyRequest HTTP request model
type CreatePartyRequest struct {
	PackageID    int64   `json:"packageId"`
	PartyDate    string  `json:"partyDate"` // "2025-10-15"
	StartTime    string  `json:"startTime"` // "15:00"
	Guests       int     `json:"guests"`
	ChildName    string  `json:"childName"`
	ChildAge     int     `json:"childAge"`
	Theme        *string `json:"theme,omitempty"`
	ContactName  string  `json:"contactName"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *CreatePartyRequest) ToServiceRequest(actor domain.Actor) (*models.CreatePartyRequest, error) {
	date, err := handlers.ParseDate(r.PartyDate)
	if err != nil {
		return nil, err
	}
	return &models.CreatePartyRequest{
		Actor:        actor,
		PackageID:    r.PackageID,
		PartyDate:    date,
		StartTime:    r.StartTime,
		Guests:       r.Guests,
		ChildName:    r.ChildName,
		ChildAge:     r.ChildAge,
		Theme:        r.Theme,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Notes:        r.Notes,
	}, nil
}
