package create_booking

// Request модель запроса на создание бронирования
// Дата и время приходят строками ("2024-03-01", "09:00") и валидируются usecase'ом
type Request struct {
	Name      string
	Email     string
	Phone     string
	Intention string // опционально
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
}
