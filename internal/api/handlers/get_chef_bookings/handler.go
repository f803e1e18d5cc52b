package get_chef_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers"
)

const (
	msgInvalidChefID = "некорректный ID повара"
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

// Handle GET /api/v1/chefs/{chefId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем chefId из URL
	vars := mux.Vars(r)
	chefIDStr := vars["chefId"]

	chefID, err := strconv.ParseInt(chefIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /chefs/{chefId}/bookings - Invalid chef ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChefID)
		return
	}

	result, err := h.service.GetChefBookings(r.Context(), chefID)
	if err != nil {
		h.logger.Error("GET /chefs/{chefId}/bookings - Failed to get bookings: chef_id=%d, error=%v",
			chefID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /chefs/{chefId}/bookings - Bookings retrieved successfully: chef_id=%d, count=%d",
		chefID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
