package bookings

// AdminListRequest параметры админской выборки бронирований
// Фильтр по месяцу применяется только когда заданы и год, и месяц
type AdminListRequest struct {
	Year   *int
	Month  *int
	Status *string
}

// hasPeriod сообщает, задан ли месячный фильтр целиком
func (r *AdminListRequest) hasPeriod() bool {
	return r.Year != nil && r.Month != nil
}
