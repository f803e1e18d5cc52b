package profileservice

// ChefAvailability снимок доступности повара из ProfileService.
// Инвариант "глобальный is_available=false гасит все частные флаги"
// обеспечивает владеющий сервис; здесь снимок только читается.
type ChefAvailability struct {
	ChefID                 int64 `json:"chef_id"`
	IsAvailable            bool  `json:"is_available"`
	BreakfastAvailable     bool  `json:"breakfast_available"`
	LunchAvailable         bool  `json:"lunch_available"`
	DinnerAvailable        bool  `json:"dinner_available"`
	UrgentBookingAvailable bool  `json:"urgent_booking_available"`
	PreBookingAvailable    bool  `json:"pre_booking_available"`
}

// Dish модель блюда из ProfileService
type Dish struct {
	ID            int64  `json:"id"`
	ChefID        int64  `json:"chef_id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	AvailableTime string `json:"available_time"` // breakfast | lunch | dinner
}

// Profile модель пользователя (повар или клиент) из ProfileService
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // chef | customer
}

// DisplayName возвращает имя для денормализации в записи бронирования
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
