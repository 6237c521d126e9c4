package create_booking

import (
	"github.com/m04kA/ludoteca-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Kind         domain.BookingKind
	SlotID       int64
	ContactName  string
	ContactEmail string
	ContactPhone string
	ChildName    string
	ChildAge     *int
	Guests       *int // только день рождения
	Comment      *string
}

// Response созданное бронирование вместе со временем слота
type Response struct {
	Booking *domain.Booking
}
