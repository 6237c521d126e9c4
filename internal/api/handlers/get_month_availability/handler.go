package get_month_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	getMonthAvailability "github.com/m04kA/ludoteca-service/internal/usecase/get_month_availability"
)

const (
	msgInvalidKind   = "неизвестный вид бронирования"
	msgInvalidParams = "некорректный месяц, ожидается YYYY-MM"
)

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/{kind}
// Query params: month (YYYY-MM, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("GET /availability/{kind} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	month := r.URL.Query().Get("month")
	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{Kind: kind, Month: month})
	if err != nil {
		switch {
		case errors.Is(err, getMonthAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/%s - Invalid month %q: %v", kind, month, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/%s - Failed to build calendar: %v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/%s - Calendar built successfully: month=%s", kind, result.Month.Key())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
