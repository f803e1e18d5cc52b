package bookings

import (
	"context"
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error)
	GetByChefID(ctx context.Context, chefID int64) ([]*domain.Booking, error)
	CountConfirmed(ctx context.Context, chefID int64, date time.Time, slot domain.Slot, bookingType domain.BookingType, excludeBookingID *int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, statusUpdatedAt time.Time) error
	MarkPaid(ctx context.Context, id int64) error
}

// LifecycleEngine интерфейс движка временных переходов статусов
type LifecycleEngine interface {
	Next(b *domain.Booking) (domain.BookingStatus, bool)
	Now() time.Time
}

// EventPublisher интерфейс публикации событий смены статуса.
// Допускается nil — тогда события не публикуются.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, b *domain.Booking, from, to domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
