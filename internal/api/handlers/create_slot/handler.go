package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	"github.com/m04kA/ludoteca-service/internal/service/slots"
	"github.com/m04kA/ludoteca-service/internal/service/slots/models"
)

const (
	msgInvalidKind        = "неизвестный вид бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "конец слота должен быть позже начала в тот же день"
	msgInvalidInput       = "некорректные данные слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/{kind}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("POST /admin/slots/{kind} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/%s - Invalid request body: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), kind, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidTimeRange):
			h.logger.Warn("POST /admin/slots/%s - Invalid time range: %v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/%s - Invalid input: %v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/slots/%s - Failed to create slot: %v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/%s - Slot created successfully: slot_id=%d", kind, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
