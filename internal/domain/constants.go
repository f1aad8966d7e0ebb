package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses закрытый набор статусов бронирования
// Создание всегда даёт StatusConfirmed; администратор может перевести
// бронирование в любой непустой статус из этого набора
var ValidStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
}
