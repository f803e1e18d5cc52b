package ratings

import (
	"context"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
)

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	Upsert(ctx context.Context, chefID, userID int64, value int) (*domain.ChefRating, error)
	GetByChefAndUser(ctx context.Context, chefID, userID int64) (*domain.ChefRating, error)
	Aggregate(ctx context.Context, chefID int64) (*domain.RatingAggregate, error)
}

// ProfileServiceClient интерфейс клиента сервиса профилей
type ProfileServiceClient interface {
	GetChef(ctx context.Context, chefID int64) (*profileservice.Profile, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AggregateCache кеш агрегатов рейтинга; nil допустим, тогда кеш выключен
type AggregateCache interface {
	GetAggregate(ctx context.Context, chefID int64) (*domain.RatingAggregate, error)
	SetAggregate(ctx context.Context, agg *domain.RatingAggregate) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
