package domain

import (
	"strconv"
	"time"
)

// EventType тип события уведомления
type EventType string

const (
	EventBookingPending   EventType = "booking_pending"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
	EventPartyRequested   EventType = "party_requested"
	EventPartyUpdated     EventType = "party_updated"
	EventEnquiryReceived  EventType = "enquiry_received"
)

// NotificationEvent message published after a state change; consumers render and send email/WhatsApp
type NotificationEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Reference  string            `json:"reference"`
	Name       string            `json:"name"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Date       string            `json:"date,omitempty"`
	SlotLabel  string            `json:"slotLabel,omitempty"`
	Children   int               `json:"children,omitempty"`
	Total      string            `json:"total,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// NewBookingEvent событие по бронированию; ID проставляет публикатор
func NewBookingEvent(t EventType, b *Booking, slotLabel string, occurredAt time.Time) NotificationEvent {
	event := NotificationEvent{
		Type:       t,
		Reference:  b.Reference(),
		Name:       b.ContactName,
		Date:       b.BookingDate.Format(DateFormat),
		SlotLabel:  slotLabel,
		Children:   b.NumberOfChildren,
		Total:      b.TotalAmount.StringFixed(2),
		Extra:      map[string]string{"bookingId": strconv.FormatInt(b.ID, 10)},
		OccurredAt: occurredAt,
	}
	if b.ContactEmail != nil {
		event.Email = *b.ContactEmail
	}
	if b.ContactPhone != nil {
		event.Phone = *b.ContactPhone
	}
	if b.CancellationReason != nil {
		event.Extra["reason"] = *b.CancellationReason
	}
	return event
}

// NewPartyEvent событие по заявке на день рождения
func NewPartyEvent(t EventType, p *Party, packageName string, occurredAt time.Time) NotificationEvent {
	event := NotificationEvent{
		Type:      t,
		Reference: p.Reference(),
		Name:      p.ContactName,
		Date:      p.PartyDate.Format(DateFormat),
		SlotLabel: p.StartTime.String(),
		Children:  p.Guests,
		Extra: map[string]string{
			"partyId":   strconv.FormatInt(p.ID, 10),
			"childName": p.ChildName,
			"childAge":  strconv.Itoa(p.ChildAge),
			"package":   packageName,
			"status":    string(p.Status),
		},
		OccurredAt: occurredAt,
	}
	if p.ContactEmail != nil {
		event.Email = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		event.Phone = *p.ContactPhone
	}
	return event
}

// NewEnquiryEvent событие о новом обращении
func NewEnquiryEvent(e *Enquiry, occurredAt time.Time) NotificationEvent {
	event := NotificationEvent{
		Type:       EventEnquiryReceived,
		Reference:  "EQ-" + strconv.FormatInt(e.ID, 10),
		Name:       e.Name,
		Extra:      map[string]string{"message": e.Message},
		OccurredAt: occurredAt,
	}
	if e.Email != nil {
		event.Email = *e.Email
	}
	if e.Phone != nil {
		event.Phone = *e.Phone
	}
	return event
}
