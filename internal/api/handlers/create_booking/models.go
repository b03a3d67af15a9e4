package create_booking

import (
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	createBooking "github.com/m04kA/PlayZone-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID       *int64  `json:"userId,omitempty"` // только для административного бронирования
	PackageID    int64   `json:"packageId"`
	TimeSlotID   int64   `json:"timeSlotId"`
	BookingDate  string  `json:"bookingDate"` // "2025-10-15"
	Children     int     `json:"children"`
	ChildrenAges []int64 `json:"childrenAges"`
	VoucherCode  *string `json:"voucherCode,omitempty"`
	ContactName  string  `json:"contactName"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// PaymentOrderResponse данные для открытия платёжной формы
type PaymentOrderResponse struct {
	OrderID     string `json:"orderId"`
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
	KeyID       string `json:"keyId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64                 `json:"id"`
	Reference        string                `json:"reference"`
	UserID           int64                 `json:"userId"`
	PackageID        int64                 `json:"packageId"`
	TimeSlotID       int64                 `json:"timeSlotId"`
	SlotLabel        string                `json:"slotLabel"`
	BookingDate      string                `json:"bookingDate"`
	NumberOfChildren int                   `json:"numberOfChildren"`
	ChildrenAges     []int64               `json:"childrenAges"`
	Status           string                `json:"status"`
	PaymentStatus    string                `json:"paymentStatus"`
	Subtotal         string                `json:"subtotal"`
	Discount         string                `json:"discount"`
	Total            string                `json:"total"`
	VoucherCode      *string               `json:"voucherCode,omitempty"`
	Payment          *PaymentOrderResponse `json:"payment,omitempty"`
	CreatedAt        string                `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor, adminCreated bool) (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	children := r.Children
	if children == 0 {
		children = len(r.ChildrenAges)
	}

	req := &createBooking.Request{
		Actor:        actor,
		AdminCreated: adminCreated,
		PackageID:    r.PackageID,
		TimeSlotID:   r.TimeSlotID,
		Date:         bookingDate,
		ChildrenAges: r.ChildrenAges,
		Children:     children,
		VoucherCode:  r.VoucherCode,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Notes:        r.Notes,
	}
	// Клиент всегда бронирует на себя
	if adminCreated {
		req.UserID = r.UserID
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:               resp.ID,
		Reference:        resp.Reference,
		UserID:           resp.UserID,
		PackageID:        resp.PackageID,
		TimeSlotID:       resp.TimeSlotID,
		SlotLabel:        resp.SlotLabel,
		BookingDate:      resp.BookingDate.Format(domain.DateFormat),
		NumberOfChildren: resp.NumberOfChildren,
		ChildrenAges:     resp.ChildrenAges,
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		Subtotal:         resp.Subtotal.StringFixed(2),
		Discount:         resp.Discount.StringFixed(2),
		Total:            resp.Total.StringFixed(2),
		VoucherCode:      resp.VoucherCode,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.Payment != nil {
		out.Payment = &PaymentOrderResponse{
			OrderID:     resp.Payment.OrderID,
			AmountMinor: resp.Payment.AmountMinor,
			Currency:    resp.Payment.Currency,
			KeyID:       resp.Payment.KeyID,
		}
	}
	return out
}
