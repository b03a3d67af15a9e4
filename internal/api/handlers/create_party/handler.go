package create_party

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты праздника, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные заявки"
	msgPackageNotFound    = "пакет не найден"
	msgNotBirthday        = "пакет недоступен для дня рождения"
)

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

// Handle POST /api/v1/parties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreatePartyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	party, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, parties.ErrInvalidInput):
			h.logger.Warn("POST /parties - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, parties.ErrPackageNotFound):
			handlers.RespondNotFound(w, msgPackageNotFound)
		case errors.Is(err, parties.ErrNotBirthdayPackage):
			handlers.RespondBadRequest(w, msgNotBirthday)
		default:
			h.logger.Error("POST /parties - Failed to create party: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parties - Party requested: id=%d, reference=%s", party.ID, party.Reference)
	handlers.RespondJSON(w, http.StatusCreated, party)
}
