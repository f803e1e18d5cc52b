package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus возвращается при неизвестном значении статуса
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при переходе, которого нет в таблице
	// (например, попытка подтвердить истекшее бронирование)
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrSlotConflict возвращается при попытке подтвердить бронирование,
	// когда для того же (повар, дата, слот, тип) уже есть подтвержденное
	ErrSlotConflict = errors.New("slot already has a confirmed booking")

	// ErrAccessDenied возвращается, когда актор не владеет бронированием
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
