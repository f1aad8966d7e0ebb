package get_month_bookings

import (
	"context"

	"github.com/m04kA/PPB-BookingService/internal/domain"
)

type BookingService interface {
	MonthView(ctx context.Context, year, month int) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
