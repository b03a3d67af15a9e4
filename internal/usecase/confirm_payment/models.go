package confirm_payment

import "github.com/m04kA/PlayZone-BookingService/internal/domain"

// Request данные, которые клиент получил от платёжного шлюза после оплаты
type Request struct {
	Actor     domain.Actor
	BookingID int64
	OrderID   string
	PaymentID string
	Signature string
}

// Response состояние бронирования после подтверждения
type Response struct {
	BookingID        int64
	Reference        string
	Status           string
	PaymentStatus    string
	AlreadyConfirmed bool // повторное подтверждение того же платежа
}
