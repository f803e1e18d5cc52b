package ratings

import "errors"

var (
	// ErrInvalidRating оценка вне диапазона 1..5
	ErrInvalidRating = errors.New("ratings.service: rating must be between 1 and 5")
	// ErrChefNotFound повар не найден в сервисе профилей
	ErrChefNotFound = errors.New("ratings.service: chef not found")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("ratings.service: internal error")
)
