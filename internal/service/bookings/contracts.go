package bookings

import (
	"context"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateFields(ctx context.Context, id int64, changes domain.BookingChanges) error
	UpdateAttendance(ctx context.Context, id int64, attendance domain.AttendanceStatus) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов (освобождение мест)
type SlotRepository interface {
	AdjustAvailability(ctx context.Context, id int64, delta int) error
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// MonthCache кэш выборок бронирований за месяц.
// Get при промахе отдаёт поколение вида, Set пишет под ним.
type MonthCache interface {
	Get(ctx context.Context, kind domain.BookingKind, year int, month time.Month) ([]*domain.Booking, int64, bool)
	Set(ctx context.Context, kind domain.BookingKind, gen int64, year int, month time.Month, bookings []*domain.Booking)
	Invalidate(ctx context.Context, kind domain.BookingKind)
}

// EventPublisher издатель доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Metrics счётчики изменений бронирований
type Metrics interface {
	IncBookingMutation(kind, action string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
