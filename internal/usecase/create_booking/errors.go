package create_booking

import "errors"

var (
	// ErrMissingFields возвращается, когда не заполнены обязательные поля
	ErrMissingFields = errors.New("create_booking: missing required fields")

	// ErrSlotConflict возвращается, когда слот пересекается с подтверждённым бронированием
	ErrSlotConflict = errors.New("create_booking: time slot is already booked")

	// ErrStorageUnavailable возвращается при потере соединения с хранилищем
	ErrStorageUnavailable = errors.New("create_booking: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
