package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

// RatingCache кеш агрегатов рейтинга поваров в Redis.
// Агрегат пересчитывается из источника при каждой записи; кеш только
// ускоряет чтения и инвалидируется перезаписью.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache создает кеш поверх redis клиента
func NewRatingCache(client *redis.Client, ttl time.Duration) *RatingCache {
	return &RatingCache{client: client, ttl: ttl}
}

func (c *RatingCache) aggregateKey(chefID int64) string {
	return "chef_rating:" + strconv.FormatInt(chefID, 10)
}

// GetAggregate читает агрегат из кеша; (nil, nil) при промахе
func (c *RatingCache) GetAggregate(ctx context.Context, chefID int64) (*domain.RatingAggregate, error) {
	payload, err := c.client.Get(ctx, c.aggregateKey(chefID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var agg domain.RatingAggregate
	if err := json.Unmarshal(payload, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// SetAggregate записывает агрегат в кеш
func (c *RatingCache) SetAggregate(ctx context.Context, agg *domain.RatingAggregate) error {
	payload, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.aggregateKey(agg.ChefID), payload, c.ttl).Err()
}
