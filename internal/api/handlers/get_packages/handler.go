package get_packages

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgNotFound         = "пакет не найден"
	msgForbidden        = "доступ запрещен"
)

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

// Handle GET /api/v1/packages и GET /api/v1/admin/packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// На публичном маршруте пользователя может не быть
	actor, _ := middleware.ActorFromContext(r.Context())

	packages, err := h.service.ListPackages(r.Context(), actor, h.includeInactive)
	if err != nil {
		if errors.Is(err, catalog.ErrAccessDenied) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /packages - Failed to list packages: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, packages)
}

// HandleByID GET /api/v1/packages/{id}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	pkg, err := h.service.GetPackage(r.Context(), actor, id)
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /packages/{id} - Failed to get package id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pkg)
}
