package manage_vouchers

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/vouchers"
)

const (
	msgInvalidVoucherID   = "некорректный ID ваучера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные ваучера"
	msgNotFound           = "ваучер не найден"
	msgExists             = "ваучер с таким кодом уже существует"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service VoucherService
	logger  Logger
}

func NewHandler(service VoucherService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/vouchers
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /admin/vouchers", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleCreate POST /api/v1/admin/vouchers
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateVoucherRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/vouchers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	voucher, err := h.service.Create(r.Context(), actor, serviceReq)
	if err != nil {
		h.respondError(w, "POST /admin/vouchers", err)
		return
	}

	h.logger.Info("POST /admin/vouchers - Voucher created: id=%d, code=%s", voucher.ID, voucher.Code)
	handlers.RespondJSON(w, http.StatusCreated, voucher)
}

// HandleDeactivate PATCH /api/v1/admin/vouchers/{id}/deactivate
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVoucherID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	if err := h.service.Deactivate(r.Context(), actor, id); err != nil {
		h.respondError(w, "PATCH /admin/vouchers/{id}/deactivate", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, vouchers.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, vouchers.ErrVoucherExists):
		handlers.RespondConflict(w, msgExists)
	case errors.Is(err, vouchers.ErrVoucherNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, vouchers.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
