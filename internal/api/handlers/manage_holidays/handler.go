package manage_holidays

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog"
)

const (
	msgInvalidHolidayID   = "некорректный ID выходного дня"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные выходного дня"
	msgNotFound           = "выходной день не найден"
	msgExists             = "на эту дату уже есть выходной день"
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

// HandleList GET /api/v1/holidays и GET /api/v1/admin/holidays
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.service.ListUpcomingHolidays(r.Context())
	if err != nil {
		h.logger.Error("%s %s - Failed to list holidays: %v", r.Method, r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, holidays)
}

// HandleCreate POST /api/v1/admin/holidays
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	holiday, err := h.service.CreateHoliday(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, catalog.ErrHolidayExists):
			handlers.RespondConflict(w, msgExists)
		case errors.Is(err, catalog.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("POST /admin/holidays - Failed to create holiday: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/holidays - Holiday created: id=%d, date=%s", holiday.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, holiday)
}

// HandleDelete DELETE /api/v1/admin/holidays/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, catalog.ErrHolidayNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, catalog.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /admin/holidays/{id} - Failed to delete holiday id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
