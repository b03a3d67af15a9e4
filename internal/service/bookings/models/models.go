package models

import (
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  domain.Actor
	Reason string
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	Actor  domain.Actor
	Status string
	Reason *string // для отмены
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string
}

// ListBookingsRequest фильтр административного списка
type ListBookingsRequest struct {
	StartDate        *time.Time
	EndDate          *time.Time
	TimeSlotID       *int64
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		TimeSlotID:       r.TimeSlotID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный фильтр по отменённым их и показывает
		if status == domain.StatusCancelled {
			filter.IncludeCancelled = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64   `json:"id"`
	Reference        string  `json:"reference"`
	UserID           int64   `json:"userId"`
	PackageID        int64   `json:"packageId"`
	TimeSlotID       int64   `json:"timeSlotId"`
	BookingDate      string  `json:"bookingDate"` // "2025-10-15"
	NumberOfChildren int     `json:"numberOfChildren"`
	ChildrenAges     []int64 `json:"childrenAges"`
	Status           string  `json:"status"`

	Subtotal       string  `json:"subtotal"`
	DiscountAmount string  `json:"discountAmount"`
	TotalAmount    string  `json:"totalAmount"`
	VoucherCode    *string `json:"voucherCode,omitempty"`

	PaymentStatus  string  `json:"paymentStatus"`
	PaymentOrderID *string `json:"paymentOrderId,omitempty"`
	PaymentID      *string `json:"paymentId,omitempty"`

	ContactName  string  `json:"contactName"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	ages := b.ChildrenAges
	if ages == nil {
		ages = []int64{}
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference(),
		UserID:             b.UserID,
		PackageID:          b.PackageID,
		TimeSlotID:         b.TimeSlotID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		NumberOfChildren:   b.NumberOfChildren,
		ChildrenAges:       ages,
		Status:             string(b.Status),
		Subtotal:           b.Subtotal.StringFixed(2),
		DiscountAmount:     b.DiscountAmount.StringFixed(2),
		TotalAmount:        b.TotalAmount.StringFixed(2),
		VoucherCode:        b.VoucherCode,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentOrderID:     b.PaymentOrderID,
		PaymentID:          b.PaymentID,
		ContactName:        b.ContactName,
		ContactEmail:       b.ContactEmail,
		ContactPhone:       b.ContactPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
