package domain

import "time"

// ChefRating один голос пользователя за повара.
// Пара (chef, user) уникальна: повторная оценка перезаписывает значение.
type ChefRating struct {
	ID        int64
	ChefID    int64
	UserID    int64
	Rating    int
	CreatedAt time.Time
}

// RatingAggregate derived mean rating of a chef, recomputed from all votes.
type RatingAggregate struct {
	ChefID  int64
	Average float64
	Total   int
}

// ValidRating reports whether the value is within the allowed 1..5 range.
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
