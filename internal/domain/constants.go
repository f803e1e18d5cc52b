package domain

import (
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/pkg/types"
)

// Expiry windows for pending bookings
const (
	UrgentExpiryWindow     = 15 * time.Minute
	PrebookingExpiryWindow = time.Hour
)

// Prebooking date constraints: дата должна попадать в [завтра, завтра+7 дней]
const PrebookingWindowDays = 7

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Address and instructions validation constants
const (
	MinAddressLength      = 10
	MinInstructionsLength = 5
	MaxAddressRepeatRun   = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotStartTimes фиксированное начало каждого слота (wall-clock)
var SlotStartTimes = map[Slot]types.TimeString{
	SlotBreakfast: "08:00",
	SlotLunch:     "12:00",
	SlotDinner:    "18:00",
}

// SlotEndTimes фиксированный конец каждого слота (wall-clock).
// Подтвержденное бронирование автоматически завершается после этой границы.
var SlotEndTimes = map[Slot]types.TimeString{
	SlotBreakfast: "10:00",
	SlotLunch:     "14:00",
	SlotDinner:    "20:00",
}

// TerminalStatuses статусы, из которых нет автоматических переходов
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusExpired,
	StatusCompleted,
}
