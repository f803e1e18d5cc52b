package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidAddress возвращается при некорректном адресе доставки
	ErrInvalidAddress = errors.New("create_booking: invalid address")

	// ErrInvalidContactNumber возвращается при некорректном контактном номере
	ErrInvalidContactNumber = errors.New("create_booking: invalid contact number")

	// ErrInvalidInstructions возвращается при слишком коротких инструкциях
	ErrInvalidInstructions = errors.New("create_booking: invalid special instructions")

	// ErrInvalidDate возвращается, когда дата предзаказа вне допустимого окна
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrCustomerNotFound возвращается, когда профиль клиента не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrDishNotFound возвращается, когда блюдо не найдено
	ErrDishNotFound = errors.New("create_booking: dish not found")

	// ErrChefNotAvailable возвращается, когда повар глобально недоступен
	ErrChefNotAvailable = errors.New("create_booking: chef is currently not available for bookings")

	// ErrSlotUnavailable возвращается, когда повар недоступен для слота
	ErrSlotUnavailable = errors.New("create_booking: chef is not available for slot")

	// ErrUrgentDisabled возвращается, когда срочные бронирования отключены
	ErrUrgentDisabled = errors.New("create_booking: urgent booking is disabled by the chef")

	// ErrPrebookingDisabled возвращается, когда предзаказы отключены
	ErrPrebookingDisabled = errors.New("create_booking: pre-booking is disabled by the chef")

	// ErrSlotConflict возвращается, когда слот уже занят подтвержденным
	// бронированием с тем же ключом (повар, дата, слот, тип)
	ErrSlotConflict = errors.New("create_booking: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
