package get_month_availability

import (
	"context"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

// BookingLister интерфейс выборки бронирований за месяц (с кэшем)
type BookingLister interface {
	ListDomain(ctx context.Context, req *models.ListBookingsRequest) ([]*domain.Booking, error)
}

// SlotLister интерфейс выборки слотов по фильтру
type SlotLister interface {
	ListDomain(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
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

// Now возвращает текущее время в часовом поясе ludoteca
func (p *RealTimeProvider) Now() time.Time {
	return businesstime.Now()
}
