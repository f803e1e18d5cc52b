package create_booking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/middleware"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	createBooking "github.com/Iqra-Naeem-05/easycook-backend/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotRequest *createBooking.Request
	err        error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		Bookings: []createBooking.CreatedBooking{
			{
				ID:          1,
				CustomerID:  req.CustomerID,
				ChefID:      20,
				DishID:      req.DishIDs[0],
				Slot:        req.Slots[0],
				BookingType: req.BookingType,
				Date:        req.Date,
				Status:      domain.StatusPending,
				CreatedAt:   time.Date(2025, 10, 15, 13, 0, 0, 0, time.UTC),
			},
		},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, useCase *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nopLogger{})
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings", handler.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// Заказчик берется из аутентификации: customerId в теле запроса игнорируется
func TestHandler_Handle_CustomerBoundToCaller(t *testing.T) {
	useCase := &fakeUseCase{}
	body := `{
		"customerId": 999,
		"dishIds": [5],
		"slots": ["dinner"],
		"bookingType": "urgent",
		"date": "2025-10-15",
		"address": "House 12, Street 5, Gulberg",
		"contactNumber": "03001234567"
	}`

	recorder := doRequest(t, useCase, "7", body)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, useCase.gotRequest)
	assert.Equal(t, int64(7), useCase.gotRequest.CustomerID)
}

func TestHandler_Handle_Unauthorized(t *testing.T) {
	useCase := &fakeUseCase{}
	body := `{"dishIds": [5], "slots": ["dinner"], "bookingType": "urgent", "date": "2025-10-15"}`

	recorder := doRequest(t, useCase, "", body)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, useCase.gotRequest)
}

func TestHandler_Handle_InvalidBody(t *testing.T) {
	useCase := &fakeUseCase{}

	recorder := doRequest(t, useCase, "7", `{not json`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Nil(t, useCase.gotRequest)
}
