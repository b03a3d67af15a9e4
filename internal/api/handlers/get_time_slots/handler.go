package get_time_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog"
)

const msgForbidden = "доступ запрещен"

type Handler struct {
	service         CatalogService
	includeInactive bool
	logger          Logger
}

// NewHandler includeInactive=true для административного списка
func NewHandler(service CatalogService, includeInactive bool, logger Logger) *Handler {
	return &Handler{
		service:         service,
		includeInactive: includeInactive,
		logger:          logger,
	}
}

// Handle GET /api/v1/time-slots и GET /api/v1/admin/time-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	slots, err := h.service.ListTimeSlots(r.Context(), actor, h.includeInactive)
	if err != nil {
		if errors.Is(err, catalog.ErrAccessDenied) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /time-slots - Failed to list time slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slots)
}
