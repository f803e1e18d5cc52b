package rate_chef

import (
	"context"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

type RatingService interface {
	Submit(ctx context.Context, chefID, userID int64, value int) (*domain.RatingAggregate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
