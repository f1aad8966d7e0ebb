package domain

import (
	"time"

	"github.com/m04kA/PPB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment with the parish priest
type Booking struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Intention string // free-text mass intention or visit reason, may be empty

	Date      time.Time // calendar day, midnight local
	StartTime types.TimeString
	EndTime   types.TimeString
	StartAt   time.Time // Date + StartTime, local
	EndAt     time.Time // Date + EndTime, local; always after StartAt

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking occupies its slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ParseStatus валидирует строку статуса и конвертирует её в BookingStatus
func ParseStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// BookingsFilter фильтр для выборки бронирований
// Все поля опциональны; nil означает отсутствие фильтра
type BookingsFilter struct {
	StartAt *time.Time     // Нижняя граница start_at (включительно)
	EndAt   *time.Time     // Верхняя граница start_at (исключительно)
	Status  *BookingStatus // Фильтр по статусу
}
