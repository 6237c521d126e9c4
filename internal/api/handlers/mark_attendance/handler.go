package mark_attendance

import (
	"errors"
	"net/http"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	"github.com/m04kA/ludoteca-service/internal/service/bookings"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotAllowed         = "посещение отмечается только для подтверждённых бронирований"
	msgInvalidAttendance  = "некорректная отметка посещения"
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

// Handle PATCH /api/v1/admin/bookings/{id}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.MarkAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkAttendance(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAttendanceNotAllowed):
			h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Not allowed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotAllowed)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Invalid attendance: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidAttendance)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/attendance - Failed to mark attendance: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/attendance - Attendance marked successfully: booking_id=%d, attendance=%s",
		bookingID, result.Attendance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
