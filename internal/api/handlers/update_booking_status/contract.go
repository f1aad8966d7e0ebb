package update_booking_status

import (
	"context"

	"github.com/m04kA/PPB-BookingService/internal/domain"
)

type UpdateStatusUseCase interface {
	Execute(ctx context.Context, bookingID int64, rawStatus string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
