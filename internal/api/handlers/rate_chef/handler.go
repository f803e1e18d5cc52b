package rate_chef

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/middleware"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/ratings"
)

const (
	msgInvalidChefID      = "некорректный ID повара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRating      = "оценка должна быть от 1 до 5"
	msgChefNotFound       = "повар не найден"
	msgUnauthorized       = "не удалось определить вызывающего"
)

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

// Handle POST /api/v1/chefs/{chefId}/rating
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем chefId из URL
	vars := mux.Vars(r)
	chefIDStr := vars["chefId"]

	chefID, err := strconv.ParseInt(chefIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /chefs/{chefId}/rating - Invalid chef ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChefID)
		return
	}

	// ID пользователя приходит из auth middleware
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /chefs/{chefId}/rating - Missing caller ID: chef_id=%d", chefID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req RateChefRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chefs/{chefId}/rating - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	agg, err := h.service.Submit(r.Context(), chefID, userID, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidRating):
			h.logger.Warn("POST /chefs/{chefId}/rating - Invalid rating value: chef_id=%d, rating=%d",
				chefID, req.Rating)
			handlers.RespondBadRequest(w, msgInvalidRating)

		case errors.Is(err, ratings.ErrChefNotFound):
			h.logger.Warn("POST /chefs/{chefId}/rating - Chef not found: chef_id=%d", chefID)
			handlers.RespondNotFound(w, msgChefNotFound)

		default:
			h.logger.Error("POST /chefs/{chefId}/rating - Failed to submit rating: chef_id=%d, user_id=%d, error=%v",
				chefID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chefs/{chefId}/rating - Rating submitted: chef_id=%d, user_id=%d, rating=%d",
		chefID, userID, req.Rating)
	handlers.RespondJSON(w, http.StatusOK, FromAggregate(agg))
}
