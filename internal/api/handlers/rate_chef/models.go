package rate_chef

import "github.com/Iqra-Naeem-05/easycook-backend/internal/domain"

// RateChefRequest HTTP request model
type RateChefRequest struct {
	Rating int `json:"rating"`
}

// RateChefResponse HTTP response с пересчитанным агрегатом
type RateChefResponse struct {
	ChefID       int64   `json:"chefId"`
	Average      float64 `json:"average"`
	TotalRatings int     `json:"totalRatings"`
}

// FromAggregate конвертирует агрегат в HTTP response
func FromAggregate(agg *domain.RatingAggregate) *RateChefResponse {
	return &RateChefResponse{
		ChefID:       agg.ChefID,
		Average:      agg.Average,
		TotalRatings: agg.Total,
	}
}
