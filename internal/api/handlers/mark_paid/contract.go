package mark_paid

import (
	"context"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings/models"
)

type BookingService interface {
	MarkPaid(ctx context.Context, bookingID int64, chefID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
