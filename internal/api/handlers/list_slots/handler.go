package list_slots

import (
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
)

const (
	msgInvalidKind = "неизвестный вид бронирования"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/slots/{kind}
// Query params: date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("GET /slots/{kind} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /slots/%s - Invalid date: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), kind, date)
	if err != nil {
		h.logger.Error("GET /slots/%s - Failed to list slots: %v", kind, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots/%s - Slots retrieved successfully: count=%d", kind, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
