package mark_paid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/middleware"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "отметить оплату может только повар заказа"
	msgUnauthorized     = "не удалось определить вызывающего"
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

// Handle PATCH /api/v1/bookings/{bookingId}/paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/paid - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// ID повара приходит из auth middleware
	chefID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/paid - Missing caller ID: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.MarkPaid(r.Context(), bookingID, chefID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/paid - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/paid - Access denied: booking_id=%d, chef_id=%d",
				bookingID, chefID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /bookings/{id}/paid - Failed to mark paid: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/paid - Booking marked as paid: booking_id=%d, chef_id=%d",
		bookingID, chefID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
