package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
)

const (
	msgMissingParams = "параметры date и timeSlotId обязательны"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (YYYY-MM-DD), timeSlotId, children (по умолчанию 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateStr, slotIDStr := query.Get("date"), query.Get("timeSlotId")
	if dateStr == "" || slotIDStr == "" {
		h.logger.Warn("GET /availability - Missing date or timeSlotId")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, slotIDStr, query.Get("children"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability - Failed to check availability: slot_id=%d, error=%v",
				useCaseReq.TimeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - date=%s, slot_id=%d, available=%t, remaining=%d",
		dateStr, useCaseReq.TimeSlotID, result.Available, result.Remaining)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
