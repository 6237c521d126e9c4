package list_slots

import (
	"context"
	"time"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/slots/models"
)

type SlotService interface {
	List(ctx context.Context, kind domain.BookingKind, date *time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
