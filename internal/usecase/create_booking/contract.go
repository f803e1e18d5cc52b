package create_booking

import (
	"context"
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountConfirmed(ctx context.Context, chefID int64, date time.Time, slot domain.Slot, bookingType domain.BookingType, excludeBookingID *int64) (int, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetChefAvailability(ctx context.Context, chefID int64) (*profileservice.ChefAvailability, error)
	GetDish(ctx context.Context, dishID int64) (*profileservice.Dish, error)
	GetProfile(ctx context.Context, userID int64) (*profileservice.Profile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
