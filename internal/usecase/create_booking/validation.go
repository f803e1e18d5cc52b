package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
)

var (
	// Пакистанский мобильный номер: 03XXXXXXXXX
	contactNumberPattern = regexp.MustCompile(`^03\d{9}$`)

	// Допустимые символы адреса: буквы, цифры, пробелы, запятые, точки, дефисы
	addressCharsPattern = regexp.MustCompile(`^[a-zA-Z0-9\s,.-]+$`)
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if len(req.DishIDs) == 0 {
		return fmt.Errorf("%w: at least one dish is required", ErrInvalidInput)
	}

	// Блюда и слоты спарены по позициям
	if len(req.DishIDs) != len(req.Slots) {
		return fmt.Errorf("%w: dishes and slots must be paired", ErrInvalidInput)
	}

	for _, dishID := range req.DishIDs {
		if dishID <= 0 {
			return fmt.Errorf("%w: dishID must be positive", ErrInvalidInput)
		}
	}

	for _, slot := range req.Slots {
		if _, ok := domain.ParseSlot(string(slot)); !ok {
			return fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, slot)
		}
	}

	if _, ok := domain.ParseBookingType(string(req.BookingType)); !ok {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := validateAddress(req.Address); err != nil {
		return err
	}

	if err := validateContactNumber(req.ContactNumber); err != nil {
		return err
	}

	return validateInstructions(req.SpecialInstructions)
}

// validateAddress проверяет формат адреса доставки
func validateAddress(address string) error {
	cleaned := strings.TrimSpace(address)

	if len(cleaned) < domain.MinAddressLength {
		return fmt.Errorf("%w: please provide a complete address", ErrInvalidAddress)
	}

	if isAllDigits(cleaned) {
		return fmt.Errorf("%w: address cannot consist of only numbers", ErrInvalidAddress)
	}

	if !addressCharsPattern.MatchString(cleaned) {
		return fmt.Errorf("%w: address contains invalid characters", ErrInvalidAddress)
	}

	if hasExcessiveRepetition(cleaned, domain.MaxAddressRepeatRun) {
		return fmt.Errorf("%w: address seems invalid due to excessive repetition", ErrInvalidAddress)
	}

	return nil
}

// validateContactNumber проверяет локальный мобильный формат (03XXXXXXXXX)
func validateContactNumber(contact string) error {
	if !contactNumberPattern.MatchString(contact) {
		return fmt.Errorf("%w: enter a valid mobile number (e.g. 03XXXXXXXXX)", ErrInvalidContactNumber)
	}
	return nil
}

// validateInstructions проверяет особые инструкции, если они указаны
func validateInstructions(instructions *string) error {
	if instructions == nil {
		return nil
	}
	if trimmed := strings.TrimSpace(*instructions); trimmed != "" && len(trimmed) < domain.MinInstructionsLength {
		return fmt.Errorf("%w: please provide more specific instructions or leave it blank", ErrInvalidInstructions)
	}
	return nil
}

// validatePrebookingDate проверяет окно дат для предзаказа:
// [завтра, завтра+7 дней] включительно. Для срочных бронирований
// ограничений на дату нет.
func validatePrebookingDate(bookingDate time.Time, now time.Time) error {
	tomorrow := truncateToDay(now).AddDate(0, 0, 1)
	lastAllowed := tomorrow.AddDate(0, 0, domain.PrebookingWindowDays)

	// Сравниваем календарные дни, а не моменты: дата из запроса парсится
	// в UTC, а часы сервиса могут идти в другом поясе
	day := bookingDate.Format(domain.DateFormat)

	if day < tomorrow.Format(domain.DateFormat) || day > lastAllowed.Format(domain.DateFormat) {
		return fmt.Errorf("%w: date must be between %s and %s for pre-booking",
			ErrInvalidDate,
			tomorrow.Format(domain.DateFormat),
			lastAllowed.Format(domain.DateFormat))
	}
	return nil
}

// checkAvailability проверяет снимок доступности повара для слота и типа
// бронирования. Чистый предикат над снимком, порядок проверок фиксирован,
// первая неудача выигрывает.
func checkAvailability(availability *profileservice.ChefAvailability, slot domain.Slot, bookingType domain.BookingType) error {
	// 1. Глобальная доступность
	if !availability.IsAvailable {
		return ErrChefNotAvailable
	}

	// 2. Доступность конкретного слота
	if !slotAvailable(availability, slot) {
		return fmt.Errorf("%w: chef is not available for %s slot", ErrSlotUnavailable, slot)
	}

	// 3-4. Доступность типа бронирования для слота
	if bookingType == domain.TypeUrgent && !availability.UrgentBookingAvailable {
		return fmt.Errorf("%w: urgent booking is currently disabled by the chef for %s", ErrUrgentDisabled, slot)
	}
	if bookingType == domain.TypePrebooking && !availability.PreBookingAvailable {
		return fmt.Errorf("%w: pre-booking is currently disabled by the chef for %s", ErrPrebookingDisabled, slot)
	}

	// 5. Глобальная проверка типа бронирования
	if bookingType == domain.TypeUrgent && !availability.UrgentBookingAvailable {
		return ErrUrgentDisabled
	}
	if bookingType == domain.TypePrebooking && !availability.PreBookingAvailable {
		return ErrPrebookingDisabled
	}

	return nil
}

func slotAvailable(availability *profileservice.ChefAvailability, slot domain.Slot) bool {
	switch slot {
	case domain.SlotBreakfast:
		return availability.BreakfastAvailable
	case domain.SlotLunch:
		return availability.LunchAvailable
	case domain.SlotDinner:
		return availability.DinnerAvailable
	default:
		return false
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// hasExcessiveRepetition проверяет, есть ли в строке символ, повторенный
// подряд более maxRun раз (например "aaaaa" при maxRun=4)
func hasExcessiveRepetition(s string, maxRun int) bool {
	run := 0
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			run++
			if run > maxRun {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
