package domain

import "errors"

var (
	// ErrInvalidFormat возвращается при несоответствии даты или времени ожидаемому формату
	ErrInvalidFormat = errors.New("domain: invalid date or time format")

	// ErrInvalidRange возвращается, когда конец слота не позже его начала
	ErrInvalidRange = errors.New("domain: invalid time range")

	// ErrPastDate возвращается при попытке создать бронирование на прошедшую дату
	ErrPastDate = errors.New("domain: booking date is in the past")

	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("domain: invalid booking status")
)
