package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
)

// UseCase use case для создания бронирований.
// Один запрос с несколькими блюдами порождает несколько записей (по одной
// на пару блюдо/слот); либо создаются все, либо ни одной.
type UseCase struct {
	bookingRepo   BookingRepository
	profileClient ProfileServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		profileClient: profileClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирований.
// Проверка конфликтов и вставка всей пачки выполняются в одной
// сериализуемой транзакции, чтобы параллельные запросы не могли
// обойти проверку доступности слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBookings: customer=%d, dishes=%d, type=%s, date=%s",
		req.CustomerID, len(req.DishIDs), req.BookingType, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBookings: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	// 3. Окно дат для предзаказа
	if req.BookingType == domain.TypePrebooking {
		if err := validatePrebookingDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateBookings: date validation failed: %v", err)
			return nil, err
		}
	}

	// 4. Профиль клиента (для денормализации имени)
	customer, err := uc.profileClient.GetProfile(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			uc.logger.Warn("CreateBookings: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBookings: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 5. Блюда: повар каждой записи выводится из владельца блюда
	dishes := make([]*profileservice.Dish, 0, len(req.DishIDs))
	for _, dishID := range req.DishIDs {
		dish, err := uc.profileClient.GetDish(ctx, dishID)
		if err != nil {
			if errors.Is(err, profileservice.ErrDishNotFound) {
				uc.logger.Warn("CreateBookings: dish id=%d not found", dishID)
				return nil, fmt.Errorf("%w: dish id=%d", ErrDishNotFound, dishID)
			}
			uc.logger.Error("CreateBookings: failed to get dish id=%d: %v", dishID, err)
			return nil, fmt.Errorf("%w: failed to get dish: %v", ErrInternal, err)
		}
		dishes = append(dishes, dish)
	}

	// 6. Снимки доступности и профили поваров (по одному на повара)
	availabilities := make(map[int64]*profileservice.ChefAvailability)
	chefNames := make(map[int64]string)
	for _, dish := range dishes {
		if _, ok := availabilities[dish.ChefID]; ok {
			continue
		}

		availability, err := uc.profileClient.GetChefAvailability(ctx, dish.ChefID)
		if err != nil {
			uc.logger.Error("CreateBookings: failed to get availability for chef id=%d: %v", dish.ChefID, err)
			return nil, fmt.Errorf("%w: failed to get chef availability: %v", ErrInternal, err)
		}
		availabilities[dish.ChefID] = availability

		chef, err := uc.profileClient.GetProfile(ctx, dish.ChefID)
		if err != nil {
			uc.logger.Error("CreateBookings: failed to get chef profile id=%d: %v", dish.ChefID, err)
			return nil, fmt.Errorf("%w: failed to get chef profile: %v", ErrInternal, err)
		}
		chefNames[dish.ChefID] = chef.DisplayName()
	}

	// 7. Создаем все записи в одной сериализуемой транзакции:
	// частичный успех пачки не допускается
	created := make([]*domain.Booking, 0, len(dishes))

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Транзакция может быть повторена при конфликте сериализации
		created = created[:0]

		for i, dish := range dishes {
			slot := req.Slots[i]

			// 7.1. Availability gate над снимком
			if err := checkAvailability(availabilities[dish.ChefID], slot, req.BookingType); err != nil {
				uc.logger.Warn("CreateBookings: availability check failed for chef=%d slot=%s: %v",
					dish.ChefID, slot, err)
				return err
			}

			// 7.2. Конфликт с уже подтвержденным бронированием того же ключа
			confirmed, err := uc.bookingRepo.CountConfirmed(txCtx, dish.ChefID, req.Date, slot, req.BookingType, nil)
			if err != nil {
				uc.logger.Error("CreateBookings: conflict check failed: %v", err)
				return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
			}
			if confirmed > 0 {
				uc.logger.Warn("CreateBookings: %s slot already booked for %s on %s (chef=%d)",
					slot, req.BookingType, req.Date.Format(domain.DateFormat), dish.ChefID)
				return fmt.Errorf("%w: %s slot is already booked for %s on %s",
					ErrSlotConflict, slot, req.BookingType, req.Date.Format(domain.DateFormat))
			}

			// 7.3. Запись создается в статусе pending
			booking := &domain.Booking{
				CustomerID:          req.CustomerID,
				ChefID:              dish.ChefID,
				DishID:              dish.ID,
				Slot:                slot,
				BookingType:         req.BookingType,
				Date:                req.Date,
				Address:             req.Address,
				ContactNumber:       req.ContactNumber,
				SpecialInstructions: req.SpecialInstructions,
				Status:              domain.StatusPending,
				DishName:            dish.Name,
				DishPrice:           dish.Price,
				ChefName:            chefNames[dish.ChefID],
				CustomerName:        customer.DisplayName(),
			}

			saved, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateBookings: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
			created = append(created, saved)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBookings: successfully created %d bookings for customer=%d",
		len(created), req.CustomerID)

	resp := &Response{Bookings: make([]CreatedBooking, 0, len(created))}
	for _, b := range created {
		resp.Bookings = append(resp.Bookings, fromDomain(b))
	}
	return resp, nil
}
