package get_booking_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	getBookingDashboard "github.com/m04kA/ludoteca-service/internal/usecase/get_booking_dashboard"
)

const (
	msgInvalidKind   = "неизвестный вид бронирования"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetBookingDashboardUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingDashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/{kind}/dashboard
// Query params: month, date, weekOrder, page (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings/{kind}/dashboard - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	useCaseReq, err := ToUseCaseRequest(kind, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/bookings/%s/dashboard - Invalid parameters: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getBookingDashboard.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings/%s/dashboard - Invalid parameters: %v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/bookings/%s/dashboard - Failed to build dashboard: %v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings/%s/dashboard - Dashboard built successfully: months=%d", kind, len(result.Months))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
