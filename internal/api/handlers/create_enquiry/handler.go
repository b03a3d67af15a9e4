package create_enquiry

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/service/enquiries"
	"github.com/m04kA/PlayZone-BookingService/internal/service/enquiries/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите имя, email или телефон и текст сообщения"
)

type Handler struct {
	service EnquiryService
	logger  Logger
}

func NewHandler(service EnquiryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/enquiries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /enquiries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	enquiry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, enquiries.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /enquiries - Failed to save enquiry: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, enquiry)
}
