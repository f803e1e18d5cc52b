package rating

import "errors"

var (
	// ErrRatingNotFound возвращается, когда оценка не найдена
	ErrRatingNotFound = errors.New("rating.repository: rating not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rating.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rating.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rating.repository: failed to scan row")
)
