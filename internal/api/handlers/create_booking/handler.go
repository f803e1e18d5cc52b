package create_booking

import (
	"errors"
	"net/http"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/middleware"
	createBooking "github.com/Iqra-Naeem-05/easycook-backend/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "не удалось определить вызывающего"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidAddress     = "некорректный адрес доставки"
	msgInvalidContact     = "некорректный контактный номер"
	msgInvalidInstruction = "инструкции слишком короткие"
	msgInvalidDate        = "некорректная дата бронирования"
	msgCustomerNotFound   = "пользователь не найден"
	msgDishNotFound       = "блюдо не найдено"
	msgChefNotAvailable   = "повар сейчас не принимает заказы"
	msgSlotUnavailable    = "выбранный слот недоступен у повара"
	msgUrgentDisabled     = "срочные заказы у повара отключены"
	msgPrebookingDisabled = "предзаказы у повара отключены"
	msgSlotConflict       = "слот уже занят подтверждённым заказом"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Заказчик привязывается к аутентифицированному вызывающему,
	// значение из тела запроса не принимается
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing caller identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты, слотов и типа)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidAddress):
			h.logger.Warn("POST /bookings - Invalid address: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidAddress)

		case errors.Is(err, createBooking.ErrInvalidContactNumber):
			h.logger.Warn("POST /bookings - Invalid contact number: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidContact)

		case errors.Is(err, createBooking.ErrInvalidInstructions):
			h.logger.Warn("POST /bookings - Invalid special instructions: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidInstruction)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: customer_id=%d, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrDishNotFound):
			h.logger.Warn("POST /bookings - Dish not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgDishNotFound)

		case errors.Is(err, createBooking.ErrChefNotAvailable):
			h.logger.Warn("POST /bookings - Chef not available: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgChefNotAvailable)

		case errors.Is(err, createBooking.ErrUrgentDisabled):
			h.logger.Warn("POST /bookings - Urgent bookings disabled: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgUrgentDisabled)

		case errors.Is(err, createBooking.ErrPrebookingDisabled):
			h.logger.Warn("POST /bookings - Prebookings disabled: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgPrebookingDisabled)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: customer_id=%d, error=%v", customerID, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create bookings: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Bookings created successfully: customer_id=%d, count=%d",
		customerID, len(response.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
