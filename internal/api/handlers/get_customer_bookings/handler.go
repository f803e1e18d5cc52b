package get_customer_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers"
)

const (
	msgInvalidCustomerID = "некорректный ID пользователя"
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

// Handle GET /api/v1/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем customerId из URL
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{customerId}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Получаем бронирования: просроченные и завершившиеся переводятся
	// в актуальный статус прямо на чтении
	result, err := h.service.GetCustomerBookings(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /customers/{customerId}/bookings - Failed to get bookings: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers/{customerId}/bookings - Bookings retrieved successfully: customer_id=%d, count=%d",
		customerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
