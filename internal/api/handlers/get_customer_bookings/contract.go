package get_customer_bookings

import (
	"context"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings/models"
)

type BookingService interface {
	GetCustomerBookings(ctx context.Context, customerID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
