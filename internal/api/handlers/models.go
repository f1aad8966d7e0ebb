package handlers

import (
	"time"

	"github.com/m04kA/PPB-BookingService/internal/domain"
)

// BookingResponse HTTP-представление бронирования
// Используется всеми handlers, отдающими бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Intention string `json:"intention"`
	Date      string `json:"date"`      // "2024-03-01"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "09:30"
	StartAt   string `json:"startDateTime"`
	EndAt     string `json:"endDateTime"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain модель в HTTP-ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Intention: b.Intention,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		StartAt:   b.StartAt.Format(time.RFC3339),
		EndAt:     b.EndAt.Format(time.RFC3339),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain моделей в HTTP-ответ
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}
