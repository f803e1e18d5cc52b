package profileservice

import "errors"

var (
	// ErrChefNotFound возвращается, когда повар не найден
	ErrChefNotFound = errors.New("profileservice client: chef not found")

	// ErrDishNotFound возвращается, когда блюдо не найдено
	ErrDishNotFound = errors.New("profileservice client: dish not found")

	// ErrProfileNotFound возвращается, когда профиль пользователя не найден
	ErrProfileNotFound = errors.New("profileservice client: profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)
