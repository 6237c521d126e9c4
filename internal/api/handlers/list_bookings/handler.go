package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	"github.com/m04kA/ludoteca-service/internal/service/bookings"
)

const (
	msgInvalidKind   = "неизвестный вид бронирования"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/{kind}
// Query params: year+month или date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings/{kind} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(kind, q.Get("year"), q.Get("month"), q.Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings/%s - Invalid parameters: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings/%s - Invalid parameters: %v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/bookings/%s - Failed to get bookings: %v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings/%s - Bookings retrieved successfully: count=%d", kind, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
