package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	createBooking "github.com/m04kA/ludoteca-service/internal/usecase/create_booking"
)

const (
	msgInvalidKind        = "неизвестный вид бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotFound       = "слот не найден"
	msgSlotClosed         = "слот закрыт для бронирования"
	msgSlotInPast         = "слот уже начался"
	msgSlotNotAvailable   = "в выбранном слоте нет свободных мест"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{kind}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("POST /bookings/{kind} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%s - Invalid request body: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(kind))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%s - Invalid input: %v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/%s - Slot not found: slot_id=%d", kind, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotClosed):
			h.logger.Warn("POST /bookings/%s - Slot closed: slot_id=%d", kind, req.SlotID)
			handlers.RespondConflict(w, msgSlotClosed)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings/%s - Slot in past: slot_id=%d", kind, req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/%s - Slot not available: slot_id=%d", kind, req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings/%s - Failed to create booking: slot_id=%d, error=%v", kind, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%s - Booking created successfully: booking_id=%d, slot_id=%d",
		kind, result.Booking.ID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
