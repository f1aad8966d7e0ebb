package get_admin_bookings

import (
	"context"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	"github.com/m04kA/PPB-BookingService/internal/service/bookings"
)

type BookingService interface {
	AdminList(ctx context.Context, req *bookings.AdminListRequest) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
