package profileservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ProfileService (профили, доступность, блюда)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetChefAvailability получает снимок доступности повара
func (c *Client) GetChefAvailability(ctx context.Context, chefID int64) (*ChefAvailability, error) {
	url := fmt.Sprintf("%s/internal/chefs/%d/availability", c.baseURL, chefID)

	var availability ChefAvailability
	if err := c.getJSON(ctx, url, &availability, ErrChefNotFound); err != nil {
		return nil, err
	}
	return &availability, nil
}

// GetDish получает блюдо по ID
func (c *Client) GetDish(ctx context.Context, dishID int64) (*Dish, error) {
	url := fmt.Sprintf("%s/internal/dishes/%d", c.baseURL, dishID)

	var dish Dish
	if err := c.getJSON(ctx, url, &dish, ErrDishNotFound); err != nil {
		return nil, err
	}
	return &dish, nil
}

// GetProfile получает профиль пользователя (повара или клиента) по ID
func (c *Client) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	var profile Profile
	if err := c.getJSON(ctx, url, &profile, ErrProfileNotFound); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetChef получает профиль повара; не-повар считается не найденным
func (c *Client) GetChef(ctx context.Context, chefID int64) (*Profile, error) {
	profile, err := c.GetProfile(ctx, chefID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrChefNotFound
		}
		return nil, err
	}
	if profile.Role != "chef" {
		return nil, ErrChefNotFound
	}
	return profile, nil
}

func (c *Client) getJSON(ctx context.Context, url string, target interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
