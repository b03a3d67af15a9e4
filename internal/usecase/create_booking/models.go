package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// Config параметры сценария из конфигурации сервиса
type Config struct {
	PaymentMode string // online | venue
	AdvanceDays int    // 0 = domain.DefaultAdvanceBookingDays
	Currency    string
	Location    *time.Location // часовой пояс площадки, nil = UTC
}

// Request модель запроса на создание бронирования
type Request struct {
	Actor        domain.Actor
	AdminCreated bool   // бронирование заводит администратор (оплата вне системы)
	UserID       *int64 // для административного бронирования: клиент, на которого оно оформляется

	PackageID    int64
	TimeSlotID   int64
	Date         time.Time // Дата бронирования (без времени)
	ChildrenAges []int64   // возраст каждого ребёнка; количество детей = len
	Children     int       // заявленное количество детей, должно совпасть с len(ChildrenAges)
	VoucherCode  *string

	ContactName  string
	ContactEmail *string
	ContactPhone *string
	Notes        *string
}

// PaymentOrder данные для оплаты на клиенте
type PaymentOrder struct {
	OrderID     string
	AmountMinor int64
	Currency    string
	KeyID       string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	Reference        string
	UserID           int64
	PackageID        int64
	TimeSlotID       int64
	SlotLabel        string
	BookingDate      time.Time
	NumberOfChildren int
	ChildrenAges     []int64
	Status           string
	PaymentStatus    string
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Total            decimal.Decimal
	VoucherCode      *string
	Payment          *PaymentOrder // только для pending
	CreatedAt        time.Time
}

func newResponse(b *domain.Booking, slot *domain.TimeSlot) *Response {
	return &Response{
		ID:               b.ID,
		Reference:        b.Reference(),
		UserID:           b.UserID,
		PackageID:        b.PackageID,
		TimeSlotID:       b.TimeSlotID,
		SlotLabel:        slot.Label(),
		BookingDate:      b.BookingDate,
		NumberOfChildren: b.NumberOfChildren,
		ChildrenAges:     b.ChildrenAges,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		Subtotal:         b.Subtotal,
		Discount:         b.DiscountAmount,
		Total:            b.TotalAmount,
		VoucherCode:      b.VoucherCode,
		CreatedAt:        b.CreatedAt,
	}
}
