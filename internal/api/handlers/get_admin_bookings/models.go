package get_admin_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/PPB-BookingService/internal/service/bookings"
)

// ToServiceRequest собирает запрос сервиса из query-параметров
// Пустые параметры означают отсутствие соответствующего фильтра
func ToServiceRequest(yearStr, monthStr, statusStr string) (*bookings.AdminListRequest, error) {
	req := &bookings.AdminListRequest{}

	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", yearStr, err)
		}
		req.Year = &year
	}

	if monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", monthStr, err)
		}
		req.Month = &month
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
