package models

import (
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// CreatePartyRequest заявка на день рождения
type CreatePartyRequest struct {
	Actor        domain.Actor `json:"-"`
	PackageID    int64        `json:"packageId"`
	PartyDate    time.Time    `json:"partyDate"`
	StartTime    string       `json:"startTime"`
	Guests       int          `json:"guests"`
	ChildName    string       `json:"childName"`
	ChildAge     int          `json:"childAge"`
	Theme        *string      `json:"theme,omitempty"`
	ContactName  string       `json:"contactName"`
	ContactEmail *string      `json:"contactEmail,omitempty"`
	ContactPhone *string      `json:"contactPhone,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
}

// UpdateStatusRequest смена статуса заявки администратором
type UpdateStatusRequest struct {
	Actor  domain.Actor `json:"-"`
	Status string       `json:"status"`
}

// PartyResponse ответ с данными заявки
type PartyResponse struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	UserID       int64     `json:"userId"`
	PackageID    int64     `json:"packageId"`
	PartyDate    string    `json:"partyDate"`
	StartTime    string    `json:"startTime"`
	Guests       int       `json:"guests"`
	ChildName    string    `json:"childName"`
	ChildAge     int       `json:"childAge"`
	Theme        *string   `json:"theme,omitempty"`
	Status       string    `json:"status"`
	ContactName  string    `json:"contactName"`
	ContactEmail *string   `json:"contactEmail,omitempty"`
	ContactPhone *string   `json:"contactPhone,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromDomainParty(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:           p.ID,
		Reference:    p.Reference(),
		UserID:       p.UserID,
		PackageID:    p.PackageID,
		PartyDate:    p.PartyDate.Format(domain.DateFormat),
		StartTime:    p.StartTime.String(),
		Guests:       p.Guests,
		ChildName:    p.ChildName,
		ChildAge:     p.ChildAge,
		Theme:        p.Theme,
		Status:       string(p.Status),
		ContactName:  p.ContactName,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDomainPartyList(parties []*domain.Party) []*PartyResponse {
	resp := make([]*PartyResponse, 0, len(parties))
	for _, p := range parties {
		resp = append(resp, FromDomainParty(p))
	}
	return resp
}
