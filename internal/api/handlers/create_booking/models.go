package create_booking

import (
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	createBooking "github.com/m04kA/ludoteca-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID       int64   `json:"slotId" validate:"required,gt=0"`
	ContactName  string  `json:"contactName" validate:"required,max=120"`
	ContactEmail string  `json:"contactEmail" validate:"required,email,max=120"`
	ContactPhone string  `json:"contactPhone" validate:"required,min=6,max=120"`
	ChildName    string  `json:"childName" validate:"required,max=120"`
	ChildAge     *int    `json:"childAge,omitempty" validate:"omitempty,min=0,max=14"`
	Guests       *int    `json:"guests,omitempty" validate:"omitempty,min=1,max=40"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(kind domain.BookingKind) *createBooking.Request {
	return &createBooking.Request{
		Kind:         kind,
		SlotID:       r.SlotID,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		ChildName:    r.ChildName,
		ChildAge:     r.ChildAge,
		Guests:       r.Guests,
		Comment:      r.Comment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
