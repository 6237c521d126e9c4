package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	AdjustAvailability(ctx context.Context, id int64, delta int) error
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MonthCache сброс кэша выборок бронирований
type MonthCache interface {
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в бизнес-зоне
func (p *RealTimeProvider) Now() time.Time {
	return businesstime.Now()
}
