package list_enquiries

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/enquiries"
)

const msgForbidden = "доступ запрещен"

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

// Handle GET /api/v1/admin/enquiries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		if errors.Is(err, enquiries.ErrAccessDenied) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /admin/enquiries - Failed to list enquiries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
