package get_active_priest

import (
	"net/http"

	"github.com/m04kA/PPB-BookingService/internal/api/handlers"
)

// PriestResponse HTTP-представление настоятеля
type PriestResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ChurchName string `json:"churchName"`
	IsActive   bool   `json:"isActive"`
}

// Handler отдает данные настоятеля прихода
// Настоятель в этом домене ровно один и задается конфигурацией,
// а не таблицей в БД
type Handler struct {
	priest PriestResponse
}

func NewHandler(name, churchName string) *Handler {
	return &Handler{
		priest: PriestResponse{
			ID:         "single-priest",
			Name:       name,
			ChurchName: churchName,
			IsActive:   true,
		},
	}
}

// Handle GET /api/priests/active
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.priest)
}
