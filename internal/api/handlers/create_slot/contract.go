package create_slot

import (
	"context"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/service/slots/models"
)

type SlotService interface {
	Create(ctx context.Context, kind domain.BookingKind, req *models.CreateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
