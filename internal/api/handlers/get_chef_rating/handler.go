package get_chef_rating

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/middleware"
)

const (
	msgInvalidChefID = "некорректный ID повара"
	msgUnauthorized  = "не удалось определить вызывающего"
)

// ChefRatingResponse оценка вызывающего плюс агрегат по повару.
// Rating равен 0, если пользователь повара ещё не оценивал.
type ChefRatingResponse struct {
	ChefID       int64   `json:"chefId"`
	Rating       int     `json:"rating"`
	Average      float64 `json:"average"`
	TotalRatings int     `json:"totalRatings"`
}

type Handler struct {
	service RatingService
	logger  Logger
}

func NewHandler(service RatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chefs/{chefId}/rating
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем chefId из URL
	vars := mux.Vars(r)
	chefIDStr := vars["chefId"]

	chefID, err := strconv.ParseInt(chefIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /chefs/{chefId}/rating - Invalid chef ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChefID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /chefs/{chefId}/rating - Missing caller ID: chef_id=%d", chefID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	userRating, err := h.service.GetUserRating(r.Context(), chefID, userID)
	if err != nil {
		h.logger.Error("GET /chefs/{chefId}/rating - Failed to get user rating: chef_id=%d, user_id=%d, error=%v",
			chefID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	agg, err := h.service.GetAggregate(r.Context(), chefID)
	if err != nil {
		h.logger.Error("GET /chefs/{chefId}/rating - Failed to get aggregate: chef_id=%d, error=%v",
			chefID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &ChefRatingResponse{
		ChefID:       chefID,
		Rating:       userRating,
		Average:      agg.Average,
		TotalRatings: agg.Total,
	}

	h.logger.Info("GET /chefs/{chefId}/rating - Rating retrieved: chef_id=%d, user_id=%d", chefID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
