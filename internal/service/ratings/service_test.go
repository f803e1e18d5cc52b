package ratings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	ratingRepo "github.com/Iqra-Naeem-05/easycook-backend/internal/infra/storage/rating"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
)

// Фейки зависимостей сервиса

type ratingKey struct {
	chefID int64
	userID int64
}

type fakeRatingRepo struct {
	ratings map[ratingKey]int
	nextID  int64
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[ratingKey]int{}, nextID: 1}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, chefID, userID int64, value int) (*domain.ChefRating, error) {
	f.ratings[ratingKey{chefID, userID}] = value
	rating := &domain.ChefRating{
		ID:        f.nextID,
		ChefID:    chefID,
		UserID:    userID,
		Rating:    value,
		CreatedAt: time.Now(),
	}
	f.nextID++
	return rating, nil
}

func (f *fakeRatingRepo) GetByChefAndUser(_ context.Context, chefID, userID int64) (*domain.ChefRating, error) {
	value, ok := f.ratings[ratingKey{chefID, userID}]
	if !ok {
		return nil, ratingRepo.ErrRatingNotFound
	}
	return &domain.ChefRating{ChefID: chefID, UserID: userID, Rating: value}, nil
}

func (f *fakeRatingRepo) Aggregate(_ context.Context, chefID int64) (*domain.RatingAggregate, error) {
	sum, total := 0, 0
	for key, value := range f.ratings {
		if key.chefID == chefID {
			sum += value
			total++
		}
	}
	agg := &domain.RatingAggregate{ChefID: chefID, Total: total}
	if total > 0 {
		agg.Average = float64(sum) / float64(total)
	}
	return agg, nil
}

type fakeProfileClient struct {
	chefs map[int64]*profileservice.Profile
}

func (f *fakeProfileClient) GetChef(_ context.Context, chefID int64) (*profileservice.Profile, error) {
	chef, ok := f.chefs[chefID]
	if !ok {
		return nil, profileservice.ErrChefNotFound
	}
	return chef, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	aggregates map[int64]*domain.RatingAggregate
	hits       int
	writes     int
}

func newFakeCache() *fakeCache {
	return &fakeCache{aggregates: map[int64]*domain.RatingAggregate{}}
}

func (f *fakeCache) GetAggregate(_ context.Context, chefID int64) (*domain.RatingAggregate, error) {
	agg, ok := f.aggregates[chefID]
	if !ok {
		return nil, nil
	}
	f.hits++
	return agg, nil
}

func (f *fakeCache) SetAggregate(_ context.Context, agg *domain.RatingAggregate) error {
	f.aggregates[agg.ChefID] = agg
	f.writes++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeRatingRepo, *fakeCache) {
	repo := newFakeRatingRepo()
	cache := newFakeCache()
	client := &fakeProfileClient{chefs: map[int64]*profileservice.Profile{
		20: {ID: 20, Username: "chef_sara", FullName: "Sara Ahmed", Role: "chef"},
	}}
	svc := NewService(repo, client, fakeTxManager{}, cache, nopLogger{})
	return svc, repo, cache
}

func TestService_Submit(t *testing.T) {
	svc, _, cache := newTestService()
	ctx := context.Background()

	agg, err := svc.Submit(ctx, 20, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, agg.Average)
	assert.Equal(t, 1, agg.Total)

	// Второй пользователь: агрегат пересчитывается по всем голосам
	agg, err = svc.Submit(ctx, 20, 8, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.Average)
	assert.Equal(t, 2, agg.Total)

	// Кеш обновлен записями
	assert.Equal(t, 2, cache.writes)
}

func TestService_Submit_OverwritesExistingVote(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, 20, 7, 2)
	require.NoError(t, err)

	// Повторная оценка перезаписывает голос, а не добавляет второй
	agg, err := svc.Submit(ctx, 20, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, agg.Average)
	assert.Equal(t, 1, agg.Total)
	assert.Equal(t, 5, repo.ratings[ratingKey{20, 7}])
}

func TestService_Submit_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, 20, 7, 0)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Submit(ctx, 20, 7, 6)
	assert.ErrorIs(t, err, ErrInvalidRating)

	// Несуществующий повар
	_, err = svc.Submit(ctx, 99, 7, 4)
	assert.ErrorIs(t, err, ErrChefNotFound)
}

func TestService_GetUserRating(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Пользователь еще не голосовал: 0 без ошибки
	value, err := svc.GetUserRating(ctx, 20, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	_, err = svc.Submit(ctx, 20, 7, 4)
	require.NoError(t, err)

	value, err = svc.GetUserRating(ctx, 20, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, value)
}

func TestService_GetAggregate_CacheReadThrough(t *testing.T) {
	svc, _, cache := newTestService()
	ctx := context.Background()

	// Промах кеша: агрегат считается из хранилища и кешируется
	agg, err := svc.GetAggregate(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, agg.Total)
	assert.Equal(t, 1, cache.writes)

	// Повторное чтение попадает в кеш
	_, err = svc.GetAggregate(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.writes)
}

func TestService_GetAggregate_NilCache(t *testing.T) {
	repo := newFakeRatingRepo()
	client := &fakeProfileClient{chefs: map[int64]*profileservice.Profile{
		20: {ID: 20, Role: "chef"},
	}}
	svc := NewService(repo, client, fakeTxManager{}, nil, nopLogger{})

	_, err := svc.Submit(context.Background(), 20, 7, 5)
	require.NoError(t, err)

	agg, err := svc.GetAggregate(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 5.0, agg.Average)
}
