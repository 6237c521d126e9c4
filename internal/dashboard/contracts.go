package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
)

// BookingAPI remote booking operations used by the admin dashboard
type BookingAPI interface {
	ListBookings(ctx context.Context, kind domain.BookingKind) ([]domain.Booking, error)
	ListBookingsByMonth(ctx context.Context, kind domain.BookingKind, year int, month time.Month) ([]domain.Booking, error)
	ListBookingsByDate(ctx context.Context, kind domain.BookingKind, date time.Time) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, changes domain.BookingChanges) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	MarkAttendance(ctx context.Context, id int64, attendance domain.AttendanceStatus) (*domain.Booking, error)
}

// SlotAPI remote slot operations used by the admin dashboard
type SlotAPI interface {
	ListSlots(ctx context.Context, kind domain.BookingKind) ([]domain.Slot, error)
	ListSlotsByDay(ctx context.Context, kind domain.BookingKind, date time.Time) ([]domain.Slot, error)
	CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	UpdateSlot(ctx context.Context, id int64, changes domain.SlotChanges) (*domain.Slot, error)
	DeleteSlot(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Clock returns the current time (overridden in tests)
type Clock func() time.Time
