package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда constraint на пересечение подтверждённых
	// слотов отклонил запись (exclusion_violation, SQLSTATE 23P01)
	ErrSlotConflict = errors.New("booking.repository: confirmed slot overlap")

	// ErrStorageUnavailable возвращается, когда соединение с БД потеряно
	ErrStorageUnavailable = errors.New("booking.repository: storage unavailable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
