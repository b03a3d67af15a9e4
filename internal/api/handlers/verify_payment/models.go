package verify_payment

import (
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	confirmPayment "github.com/m04kA/PlayZone-BookingService/internal/usecase/confirm_payment"
)

// VerifyPaymentRequest данные из платёжной формы после оплаты
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// VerifyPaymentResponse HTTP response model
type VerifyPaymentResponse struct {
	BookingID        int64  `json:"bookingId"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"paymentStatus"`
	AlreadyConfirmed bool   `json:"alreadyConfirmed"`
}

func (r *VerifyPaymentRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		Actor:     actor,
		BookingID: bookingID,
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	}
}

func FromUseCaseResponse(resp *confirmPayment.Response) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		BookingID:        resp.BookingID,
		Reference:        resp.Reference,
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		AlreadyConfirmed: resp.AlreadyConfirmed,
	}
}
