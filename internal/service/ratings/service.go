package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/infra/storage/rating"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
)

// Service сервис оценок поваров
type Service struct {
	ratingRepo    RatingRepository
	profileClient ProfileServiceClient
	txManager     TransactionManager
	cache         AggregateCache
	logger        Logger
}

// NewService создает новый сервис оценок
func NewService(
	ratingRepo RatingRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	cache AggregateCache,
	logger Logger,
) *Service {
	return &Service{
		ratingRepo:    ratingRepo,
		profileClient: profileClient,
		txManager:     txManager,
		cache:         cache,
		logger:        logger,
	}
}

// Submit сохраняет оценку пользователя и возвращает пересчитанный агрегат.
// Повторная оценка той же пары (повар, пользователь) перезаписывает значение,
// количество голосов не растет.
func (s *Service) Submit(ctx context.Context, chefID, userID int64, value int) (*domain.RatingAggregate, error) {
	if !domain.ValidRating(value) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, value)
	}

	// Проверяем что повар существует до записи оценки
	if _, err := s.profileClient.GetChef(ctx, chefID); err != nil {
		if errors.Is(err, profileservice.ErrChefNotFound) || errors.Is(err, profileservice.ErrProfileNotFound) {
			return nil, ErrChefNotFound
		}
		s.logger.Error("ratings.Submit: get chef %d: %v", chefID, err)
		return nil, fmt.Errorf("%w: Submit - get chef: %v", ErrInternal, err)
	}

	var agg *domain.RatingAggregate

	// Upsert и пересчет в одной транзакции, чтобы агрегат не видел
	// чужую незакоммиченную запись
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.ratingRepo.Upsert(ctx, chefID, userID, value); err != nil {
			return err
		}

		recomputed, err := s.ratingRepo.Aggregate(ctx, chefID)
		if err != nil {
			return err
		}
		agg = recomputed
		return nil
	})
	if err != nil {
		s.logger.Error("ratings.Submit: chef %d user %d: %v", chefID, userID, err)
		return nil, fmt.Errorf("%w: Submit - save rating: %v", ErrInternal, err)
	}

	s.refreshCache(ctx, agg)

	s.logger.Info("ratings.Submit: user %d rated chef %d with %d, average %.2f over %d votes",
		userID, chefID, value, agg.Average, agg.Total)
	return agg, nil
}

// GetUserRating возвращает оценку, которую пользователь поставил повару.
// Если оценки нет, возвращает 0 без ошибки.
func (s *Service) GetUserRating(ctx context.Context, chefID, userID int64) (int, error) {
	r, err := s.ratingRepo.GetByChefAndUser(ctx, chefID, userID)
	if errors.Is(err, rating.ErrRatingNotFound) {
		return 0, nil
	}
	if err != nil {
		s.logger.Error("ratings.GetUserRating: chef %d user %d: %v", chefID, userID, err)
		return 0, fmt.Errorf("%w: GetUserRating: %v", ErrInternal, err)
	}
	return r.Rating, nil
}

// GetAggregate возвращает агрегат рейтинга повара, через кеш при наличии
func (s *Service) GetAggregate(ctx context.Context, chefID int64) (*domain.RatingAggregate, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAggregate(ctx, chefID)
		if err != nil {
			s.logger.Warn("ratings.GetAggregate: cache read for chef %d: %v", chefID, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	agg, err := s.ratingRepo.Aggregate(ctx, chefID)
	if err != nil {
		s.logger.Error("ratings.GetAggregate: chef %d: %v", chefID, err)
		return nil, fmt.Errorf("%w: GetAggregate: %v", ErrInternal, err)
	}

	s.refreshCache(ctx, agg)
	return agg, nil
}

// refreshCache обновляет кеш агрегата; ошибки кеша не ломают запрос
func (s *Service) refreshCache(ctx context.Context, agg *domain.RatingAggregate) {
	if s.cache == nil || agg == nil {
		return
	}
	if err := s.cache.SetAggregate(ctx, agg); err != nil {
		s.logger.Warn("ratings: cache write for chef %d: %v", agg.ChefID, err)
	}
}
