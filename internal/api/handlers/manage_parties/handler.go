package manage_parties

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties/models"
)

const (
	msgInvalidPartyID     = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный статус"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "недопустимая смена статуса"
	msgForbidden          = "доступ запрещен"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service PartyService
	logger  Logger
}

func NewHandler(service PartyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/parties?status=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	list, err := h.service.List(r.Context(), actor, handlers.QueryString(r, "status"))
	if err != nil {
		h.respondError(w, "GET /admin/parties", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleUpdateStatus PATCH /api/v1/admin/parties/{id}/status
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartyID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	party, err := h.service.UpdateStatus(r.Context(), id, &models.UpdateStatusRequest{
		Actor:  actor,
		Status: req.Status,
	})
	if err != nil {
		h.respondError(w, "PATCH /admin/parties/{id}/status", err)
		return
	}

	h.logger.Info("PATCH /admin/parties/{id}/status - Status updated: id=%d, status=%s", id, party.Status)
	handlers.RespondJSON(w, http.StatusOK, party)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, parties.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, parties.ErrPartyNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, parties.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)
	case errors.Is(err, parties.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
