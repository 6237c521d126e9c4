package ludotecaapi

import (
	"github.com/m04kA/ludoteca-service/internal/domain"
	bookingModels "github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	slotModels "github.com/m04kA/ludoteca-service/internal/service/slots/models"
)

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func bookingsToDomain(resp *bookingModels.BookingListResponse) []domain.Booking {
	out := make([]domain.Booking, 0, len(resp.Bookings))
	for i := range resp.Bookings {
		out = append(out, resp.Bookings[i].ToDomain())
	}
	return out
}

func slotsToDomain(resp *slotModels.SlotListResponse) []domain.Slot {
	out := make([]domain.Slot, 0, len(resp.Slots))
	for i := range resp.Slots {
		out = append(out, resp.Slots[i].ToDomain())
	}
	return out
}
