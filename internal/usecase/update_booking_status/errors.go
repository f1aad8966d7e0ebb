package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrSlotConflict возвращается, когда подтверждение пересекается
	// с другим подтверждённым бронированием
	ErrSlotConflict = errors.New("update_booking_status: overlapping confirmed booking")

	// ErrStorageUnavailable возвращается при потере соединения с хранилищем
	ErrStorageUnavailable = errors.New("update_booking_status: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
