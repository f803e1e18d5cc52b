package update_booking_status

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings/models"
)

type fakeService struct {
	response *models.BookingResponse
	err      error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ int64, _ *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, bookingID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/status", handler.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status",
		bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "success",
			bookingID:  "1",
			body:       `{"status":"confirmed"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid_booking_id",
			bookingID:  "abc",
			body:       `{"status":"confirmed"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid_body",
			bookingID:  "1",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid_status",
			bookingID:  "1",
			body:       `{"status":"expired"}`,
			serviceErr: bookings.ErrInvalidStatus,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid_transition",
			bookingID:  "1",
			body:       `{"status":"completed"}`,
			serviceErr: bookings.ErrInvalidTransition,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not_found",
			bookingID:  "42",
			body:       `{"status":"confirmed"}`,
			serviceErr: bookings.ErrBookingNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "slot_conflict",
			bookingID:  "1",
			body:       `{"status":"confirmed"}`,
			serviceErr: bookings.ErrSlotConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "internal_error",
			bookingID:  "1",
			body:       `{"status":"confirmed"}`,
			serviceErr: bookings.ErrInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				response: &models.BookingResponse{ID: 1, Status: "confirmed"},
				err:      tt.serviceErr,
			}

			recorder := doRequest(t, svc, tt.bookingID, tt.body)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp models.BookingResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
				assert.Equal(t, "confirmed", resp.Status)
			}
		})
	}
}
