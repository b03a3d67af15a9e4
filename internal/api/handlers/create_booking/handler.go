package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	createBooking "github.com/m04kA/PlayZone-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSlotStarted        = "слот уже начался"
	msgPackageNotFound    = "пакет не найден"
	msgPackageNotBookable = "пакет недоступен для бронирования"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgForbidden          = "доступ запрещен"
	msgPaymentUnavailable = "платёжный сервис недоступен, бронирование ожидает оплаты"
)

// VoucherRejection тело ответа при отказе ваучера
type VoucherRejection struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type Handler struct {
	useCase      CreateBookingUseCase
	adminCreated bool
	logger       Logger
}

// NewHandler adminCreated=true для POST /admin/bookings
func NewHandler(useCase CreateBookingUseCase, adminCreated bool, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		adminCreated: adminCreated,
		logger:       logger,
	}
}

// Handle POST /api/v1/bookings и POST /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, h.adminCreated)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, slot_id=%d, date=%s",
				actor.UserID, req.TimeSlotID, req.BookingDate)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidVoucher):
			h.logger.Warn("POST /bookings - Voucher rejected: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, VoucherRejection{
				Error:  "ваучер не может быть применён",
				Reason: domain.VoucherRejectionReason(err),
			})

		case errors.Is(err, createBooking.ErrPaymentUnavailable):
			h.logger.Error("POST /bookings - Payment gateway unavailable: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrPackageNotBookable):
			handlers.RespondBadRequest(w, msgPackageNotBookable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrSlotAlreadyStarted):
			handlers.RespondBadRequest(w, msgSlotStarted)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, status=%s",
		result.ID, result.UserID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
