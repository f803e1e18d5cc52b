package models

import (
	"errors"
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	ChefID      int64  `json:"chefId"`
	DishID      int64  `json:"dishId"`
	Slot        string `json:"slot"`
	BookingType string `json:"bookingType"`
	Date        string `json:"date"` // "2025-10-15"

	Address             string  `json:"address"`
	ContactNumber       string  `json:"contactNumber"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	Status string `json:"status"`
	IsPaid bool   `json:"isPaid"`

	// Денормализованные данные
	DishName     string `json:"dishName"`
	DishPrice    int64  `json:"dishPrice"`
	ChefName     string `json:"chefName"`
	CustomerName string `json:"customerName"`

	StatusUpdatedAt *string   `json:"statusUpdatedAt,omitempty"` // ISO 8601
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
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
		CreatedAt:           b.CreatedAt,
	}

	if b.StatusUpdatedAt != nil {
		updatedStr := b.StatusUpdatedAt.Format(time.RFC3339)
		resp.StatusUpdatedAt = &updatedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus.
// Допустимые значения для явной смены статуса не включают expired:
// истечение выставляет только lifecycle engine.
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok || s == domain.StatusExpired {
		return "", ErrInvalidStatus
	}
	return s, nil
}
