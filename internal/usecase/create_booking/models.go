package create_booking

import (
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

// Request модель запроса на создание бронирований.
// Dishes и Slots спарены по позициям: пара (блюдо, слот) порождает
// отдельную запись бронирования.
type Request struct {
	CustomerID          int64
	DishIDs             []int64
	Slots               []domain.Slot
	BookingType         domain.BookingType
	Date                time.Time
	Address             string
	ContactNumber       string
	SpecialInstructions *string
}

// CreatedBooking одна созданная запись бронирования
type CreatedBooking struct {
	ID          int64
	CustomerID  int64
	ChefID      int64
	DishID      int64
	Slot        domain.Slot
	BookingType domain.BookingType
	Date        time.Time

	Address             string
	ContactNumber       string
	SpecialInstructions *string

	Status domain.BookingStatus
	IsPaid bool

	DishName     string
	DishPrice    int64
	ChefName     string
	CustomerName string

	CreatedAt time.Time
}

// Response модель ответа со списком созданных бронирований
type Response struct {
	Bookings []CreatedBooking
}

func fromDomain(b *domain.Booking) CreatedBooking {
	return CreatedBooking{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		ChefID:              b.ChefID,
		DishID:              b.DishID,
		Slot:                b.Slot,
		BookingType:         b.BookingType,
		Date:                b.Date,
		Address:             b.Address,
		ContactNumber:       b.ContactNumber,
		SpecialInstructions: b.SpecialInstructions,
		Status:              b.Status,
		IsPaid:              b.IsPaid,
		DishName:            b.DishName,
		DishPrice:           b.DishPrice,
		ChefName:            b.ChefName,
		CustomerName:        b.CustomerName,
		CreatedAt:           b.CreatedAt,
	}
}
