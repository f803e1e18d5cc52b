package get_chef_rating

import (
	"context"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

type RatingService interface {
	GetUserRating(ctx context.Context, chefID, userID int64) (int, error)
	GetAggregate(ctx context.Context, chefID int64) (*domain.RatingAggregate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
