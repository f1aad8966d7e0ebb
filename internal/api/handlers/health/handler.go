package health

import (
	"net/http"

	"github.com/m04kA/PPB-BookingService/internal/api/handlers"
)

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

// Handler liveness-проба сервиса
type Handler struct {
	serviceName string
}

func NewHandler(serviceName string) *Handler {
	return &Handler{serviceName: serviceName}
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Service: h.serviceName,
	})
}
