package get_booking_dashboard

import (
	"context"

	getBookingDashboard "github.com/m04kA/ludoteca-service/internal/usecase/get_booking_dashboard"
)

type GetBookingDashboardUseCase interface {
	Execute(ctx context.Context, req *getBookingDashboard.Request) (*getBookingDashboard.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
