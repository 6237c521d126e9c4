package slots

import (
	"context"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) error
	Delete(ctx context.Context, id int64) error
}

// BookingCounter считает активные бронирования слота
type BookingCounter interface {
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// MonthCache сброс кэша выборок бронирований
type MonthCache interface {
	Invalidate(ctx context.Context, kind domain.BookingKind)
}

// EventPublisher издатель доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Metrics счётчики изменений
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
