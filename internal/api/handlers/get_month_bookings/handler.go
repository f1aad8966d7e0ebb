package get_month_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PPB-BookingService/internal/api/handlers"
	"github.com/m04kA/PPB-BookingService/internal/domain"
	"github.com/m04kA/PPB-BookingService/internal/service/bookings"
)

const (
	msgInvalidPeriod      = "некорректный год или месяц"
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

// Handle GET /api/bookings/{year}/{month}
// Публичный месячный календарь для виджета бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /bookings/{year}/{month} - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("GET /bookings/{year}/{month} - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.MonthView(r.Context(), year, month)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFormat):
			h.logger.Warn("GET /bookings/{year}/{month} - Invalid period: year=%d, month=%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /bookings/{year}/{month} - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("GET /bookings/{year}/{month} - Failed to load bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{year}/{month} - Retrieved %d bookings for %04d-%02d",
		len(result), year, month)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainBookingList(result))
}
