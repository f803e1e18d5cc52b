package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
	StatusCompleted BookingStatus = "completed"
)

// Slot represents a meal window
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// BookingType represents how soon the booking is expected to be served
type BookingType string

const (
	TypeUrgent     BookingType = "urgent"
	TypePrebooking BookingType = "prebooking"
)

// Booking represents one dish booked for one meal slot.
// Запрос с несколькими блюдами разворачивается в несколько записей,
// по одной на пару (блюдо, слот).
type Booking struct {
	ID         int64
	CustomerID int64
	ChefID     int64
	DishID     int64

	Slot        Slot
	BookingType BookingType
	Date        time.Time

	Address             string
	ContactNumber       string
	SpecialInstructions *string

	Status BookingStatus
	IsPaid bool

	// Denormalized data for history
	DishName     string
	DishPrice    int64
	ChefName     string
	CustomerName string

	StatusUpdatedAt *time.Time
	CreatedAt       time.Time
}

// IsTerminal returns true if no further automatic transition applies.
// is_paid может меняться и в терминальных статусах.
func (b *Booking) IsTerminal() bool {
	for _, status := range TerminalStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

// ExpiryWindow returns how long a pending booking of this type stays valid.
func (b *Booking) ExpiryWindow() time.Duration {
	if b.BookingType == TypeUrgent {
		return UrgentExpiryWindow
	}
	return PrebookingExpiryWindow
}

// ExpiresAt returns the instant after which a pending booking is expired.
func (b *Booking) ExpiresAt() time.Time {
	return b.CreatedAt.Add(b.ExpiryWindow())
}

// allowedTransitions таблица явных переходов статусов.
// Переходы, которых нет в таблице, отклоняются. Автоматические переходы
// (pending→expired, confirmed→completed) применяет lifecycle engine, не акторы.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusRejected, StatusCancelled, StatusCompleted},
}

// CanTransition reports whether an explicit actor-driven transition from → to
// is allowed. A same-status transition is treated as an idempotent no-op.
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusExpired, StatusCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// ParseSlot validates a raw slot value
func ParseSlot(s string) (Slot, bool) {
	switch Slot(s) {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return Slot(s), true
	}
	return "", false
}

// ParseBookingType validates a raw booking type value
func ParseBookingType(s string) (BookingType, bool) {
	switch BookingType(s) {
	case TypeUrgent, TypePrebooking:
		return BookingType(s), true
	}
	return "", false
}
