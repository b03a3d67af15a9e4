package manage_packages

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidPackageID   = "некорректный ID пакета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные пакета"
	msgNotFound           = "пакет не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/packages
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.CreatePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /admin/packages", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, pkg)
}

// HandleUpdate PUT /api/v1/admin/packages/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.UpdatePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/packages/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.UpdatePackage(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/packages/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pkg)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, catalog.ErrPackageNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, catalog.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
