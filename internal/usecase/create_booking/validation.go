package create_booking

import "fmt"

// validateRequest проверяет наличие обязательных полей
// Формат даты и времени проверяется отдельно при построении слота
func validateRequest(req *Request) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrMissingFields)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrMissingFields)
	}
	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrMissingFields)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrMissingFields)
	}
	if req.StartTime == "" {
		return fmt.Errorf("%w: startTime is required", ErrMissingFields)
	}
	if req.EndTime == "" {
		return fmt.Errorf("%w: endTime is required", ErrMissingFields)
	}
	return nil
}
