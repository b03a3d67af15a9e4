package domain

// Business validation constants
const (
	MaxChildrenPerBooking       = 20
	MaxChildAge                 = 17
	MinSlotCapacity             = 1
	MaxSlotCapacity             = 500
	MaxPackageDurationMinutes   = 720 // 12 hours
	MaxPartyGuests              = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxNameLength               = 255
	MaxMessageLength            = 2000
	MaxVoucherCodeLength        = 64
	MaxPercentageDiscount       = 100
)

// DefaultAdvanceBookingDays насколько вперёд можно бронировать, если в конфиге 0
const DefaultAdvanceBookingDays = 60

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelReasonPaymentTimeout причина автоматической отмены неоплаченных бронирований
const CancelReasonPaymentTimeout = "payment not completed"
