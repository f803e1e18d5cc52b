package create_booking

import (
	"fmt"
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	createBooking "github.com/Iqra-Naeem-05/easycook-backend/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Заказчик определяется по аутентифицированному вызывающему, в теле
// запроса его нет.
type CreateBookingRequest struct {
	DishIDs             []int64  `json:"dishIds"`
	Slots               []string `json:"slots"` // "breakfast" | "lunch" | "dinner"
	BookingType         string   `json:"bookingType"`
	Date                string   `json:"date"` // "2025-10-15"
	Address             string   `json:"address"`
	ContactNumber       string   `json:"contactNumber"`
	SpecialInstructions *string  `json:"specialInstructions,omitempty"`
}

// BookingResponse HTTP response model одной созданной записи
type BookingResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	ChefID      int64  `json:"chefId"`
	DishID      int64  `json:"dishId"`
	Slot        string `json:"slot"`
	BookingType string `json:"bookingType"`
	Date        string `json:"date"`

	Address             string  `json:"address"`
	ContactNumber       string  `json:"contactNumber"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	Status string `json:"status"`
	IsPaid bool   `json:"isPaid"`

	DishName     string `json:"dishName"`
	DishPrice    int64  `json:"dishPrice"`
	ChefName     string `json:"chefName"`
	CustomerName string `json:"customerName"`

	CreatedAt string `json:"createdAt"`
}

// CreateBookingResponse HTTP response со всеми созданными записями
type CreateBookingResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим слоты
	slots := make([]domain.Slot, 0, len(r.Slots))
	for _, raw := range r.Slots {
		slot, ok := domain.ParseSlot(raw)
		if !ok {
			return nil, fmt.Errorf("unknown slot %q", raw)
		}
		slots = append(slots, slot)
	}

	// Парсим тип бронирования
	bookingType, ok := domain.ParseBookingType(r.BookingType)
	if !ok {
		return nil, fmt.Errorf("unknown booking type %q", r.BookingType)
	}

	return &createBooking.Request{
		CustomerID:          customerID,
		DishIDs:             r.DishIDs,
		Slots:               slots,
		BookingType:         bookingType,
		Date:                date,
		Address:             r.Address,
		ContactNumber:       r.ContactNumber,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Bookings: make([]BookingResponse, 0, len(resp.Bookings)),
	}

	for _, b := range resp.Bookings {
		out.Bookings = append(out.Bookings, BookingResponse{
			ID:                  b.ID,
			CustomerID:          b.CustomerID,
			ChefID:              b.ChefID,
			DishID:              b.DishID,
			Slot:                string(b.Slot),
			BookingType:         string(b.BookingType),
			Date:                b.Date.Format(domain.DateFormat),
			Address:             b.Address,
			ContactNumber:       b.ContactNumber,
			SpecialInstructions: b.SpecialInstructions,
			Status:              string(b.Status),
			IsPaid:              b.IsPaid,
			DishName:            b.DishName,
			DishPrice:           b.DishPrice,
			ChefName:            b.ChefName,
			CustomerName:        b.CustomerName,
			CreatedAt:           b.CreatedAt.Format(time.RFC3339),
		})
	}

	return out
}
