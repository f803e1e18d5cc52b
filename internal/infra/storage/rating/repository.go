package rating

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/dbmetrics"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с оценками поваров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оценок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает оценку или перезаписывает существующую.
// Пара (chef_id, user_id) уникальна: повторная оценка того же пользователя
// меняет значение, а не добавляет второй голос.
func (r *Repository) Upsert(ctx context.Context, chefID, userID int64, value int) (*domain.ChefRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("chef_ratings").
		Columns("chef_id", "user_id", "rating").
		Values(chefID, userID, value).
		Suffix("ON CONFLICT (chef_id, user_id) DO UPDATE SET rating = EXCLUDED.rating").
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	rating := domain.ChefRating{
		ChefID: chefID,
		UserID: userID,
		Rating: value,
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	rating.CreatedAt = createdAt.Time

	return &rating, nil
}

// GetByChefAndUser получает оценку, которую пользователь поставил повару
func (r *Repository) GetByChefAndUser(ctx context.Context, chefID, userID int64) (*domain.ChefRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "chef_id", "user_id", "rating", "created_at").
		From("chef_ratings").
		Where(squirrel.Eq{"chef_id": chefID, "user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByChefAndUser - build select query: %v", ErrBuildQuery, err)
	}

	var rating domain.ChefRating
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rating.ID,
		&rating.ChefID,
		&rating.UserID,
		&rating.Rating,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByChefAndUser - scan rating: %v", ErrScanRow, err)
	}

	rating.CreatedAt = createdAt.Time
	return &rating, nil
}

// Aggregate пересчитывает агрегат рейтинга повара по всем голосам.
// Всегда полный пересчет, без инкрементального среднего: при нуле голосов
// среднее равно 0.
func (r *Repository) Aggregate(ctx context.Context, chefID int64) (*domain.RatingAggregate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(AVG(rating), 0)",
		"COUNT(*)",
	).
		From("chef_ratings").
		Where(squirrel.Eq{"chef_id": chefID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Aggregate - build select query: %v", ErrBuildQuery, err)
	}

	agg := domain.RatingAggregate{ChefID: chefID}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&agg.Average, &agg.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: Aggregate - scan aggregate: %v", ErrScanRow, err)
	}

	return &agg, nil
}
