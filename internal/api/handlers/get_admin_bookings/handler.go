package get_admin_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/PPB-BookingService/internal/api/handlers"
	"github.com/m04kA/PPB-BookingService/internal/domain"
	"github.com/m04kA/PPB-BookingService/internal/service/bookings"
)

const (
	msgInvalidParams      = "некорректные параметры запроса"
	msgStorageUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/bookings
// Query params: year, month, status (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("year"), query.Get("month"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.AdminList(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFormat):
			h.logger.Warn("GET /admin/bookings - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /admin/bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("GET /admin/bookings - Failed to load bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Retrieved %d bookings", len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainBookingList(result))
}
