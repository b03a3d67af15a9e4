package verify_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	confirmPayment "github.com/m04kA/PlayZone-BookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "orderId, paymentId и signature обязательны"
	msgInvalidSignature   = "подпись платежа не прошла проверку"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgOrderMismatch      = "заказ не относится к этому бронированию"
	msgInvalidStatus      = "бронирование нельзя подтвердить"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmPayment.ErrInvalidSignature):
			h.logger.Warn("POST /bookings/{id}/payment/verify - Invalid signature: booking_id=%d, user_id=%d",
				bookingID, actor.UserID)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrOrderMismatch):
			h.logger.Warn("POST /bookings/{id}/payment/verify - Order mismatch: booking_id=%d, order_id=%s",
				bookingID, req.OrderID)
			handlers.RespondBadRequest(w, msgOrderMismatch)

		case errors.Is(err, confirmPayment.ErrInvalidStatus):
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("POST /bookings/{id}/payment/verify - Failed to confirm payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment/verify - booking_id=%d confirmed (repeat=%t)",
		bookingID, result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
