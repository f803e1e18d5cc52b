package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	bookingRepo "github.com/Iqra-Naeem-05/easycook-backend/internal/infra/storage/booking"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями.
// Каждое бронирование перед выдачей наружу проходит через lifecycle engine:
// временные переходы (pending→expired, confirmed→completed) вычисляются
// лениво на чтении и фиксируются в хранилище.
type Service struct {
	bookingRepo BookingRepository
	lifecycle   LifecycleEngine
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	lifecycle LifecycleEngine,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		lifecycle:   lifecycle,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetCustomerBookings получает бронирования клиента, прогнанные через
// lifecycle engine и отсортированные по фиксированному приоритету
// (статус, тип бронирования)
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d", customerID)

	bookingsList, err := s.bookingRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.evaluateAndRank(ctx, bookingsList)

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d",
		len(bookingsList), customerID)
	return models.FromDomainBookingList(bookingsList), nil
}

// GetChefBookings получает бронирования повара с той же обработкой,
// что и у клиента
func (s *Service) GetChefBookings(ctx context.Context, chefID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetChefBookings: fetching bookings for chef=%d", chefID)

	bookingsList, err := s.bookingRepo.GetByChefID(ctx, chefID)
	if err != nil {
		s.logger.Error("GetChefBookings: repository error for chef=%d: %v", chefID, err)
		return nil, fmt.Errorf("%w: GetChefBookings - repository error: %v", ErrInternal, err)
	}

	s.evaluateAndRank(ctx, bookingsList)

	s.logger.Info("GetChefBookings: successfully fetched %d bookings for chef=%d",
		len(bookingsList), chefID)
	return models.FromDomainBookingList(bookingsList), nil
}

// UpdateStatus выполняет явную смену статуса бронирования (подтверждение,
// отклонение, отмена, завершение).
//
// Подтверждение проходит проверку конфликтов внутри сериализуемой
// транзакции: проверка и запись статуса атомарны относительно параллельных
// подтверждений того же ключа (повар, дата, слот, тип).
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем значение статуса до обращения к хранилищу
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	var updated *domain.Booking
	var transitionFrom domain.BookingStatus
	var transitioned bool
	var lazyFrom, lazyTo domain.BookingStatus
	var lazyTransitioned bool

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Ленивые переходы применяются до проверки: истекшее pending
		// уже нельзя подтвердить. Событие уходит только после коммита:
		// при откате транзакции ленивая запись тоже откатывается
		lazyFrom, lazyTo, lazyTransitioned = s.applyLifecycle(txCtx, booking)

		// Идемпотентность: повторное подтверждение уже подтвержденного
		// бронирования не меняет число подтвержденных записей
		if booking.Status == newStatus {
			updated = booking
			return nil
		}

		if !domain.CanTransition(booking.Status, newStatus) {
			s.logger.Warn("UpdateStatus: transition %s → %s not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		// Инвариант: не более одного подтвержденного бронирования на ключ
		if newStatus == domain.StatusConfirmed {
			confirmed, err := s.bookingRepo.CountConfirmed(
				txCtx, booking.ChefID, booking.Date, booking.Slot, booking.BookingType, &booking.ID)
			if err != nil {
				return fmt.Errorf("%w: UpdateStatus - conflict check: %v", ErrInternal, err)
			}
			if confirmed > 0 {
				s.logger.Warn("UpdateStatus: confirmed collision for booking id=%d (chef=%d, date=%s, slot=%s, type=%s)",
					bookingID, booking.ChefID, booking.Date.Format(domain.DateFormat), booking.Slot, booking.BookingType)
				return fmt.Errorf("%w: a booking for %s (%s) on %s is already confirmed",
					ErrSlotConflict, booking.Slot, booking.BookingType, booking.Date.Format(domain.DateFormat))
			}
		}

		now := s.lifecycle.Now()
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		transitionFrom = booking.Status
		transitioned = true

		booking.Status = newStatus
		booking.StatusUpdatedAt = &now
		updated = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	if lazyTransitioned {
		s.publish(ctx, updated, lazyFrom, lazyTo)
	}
	if transitioned {
		s.publish(ctx, updated, transitionFrom, updated.Status)
		s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, updated.Status)
	}

	return models.FromDomainBooking(updated), nil
}

// MarkPaid выставляет флаг оплаты бронирования. Доступно только повару,
// которому принадлежит бронирование. Предусловий на статус нет: оплату
// можно отметить и для завершенного бронирования.
func (s *Service) MarkPaid(ctx context.Context, bookingID int64, chefID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaid: marking booking id=%d as paid by chef=%d", bookingID, chefID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkPaid: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkPaid: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	if booking.ChefID != chefID {
		s.logger.Warn("MarkPaid: chef=%d does not own booking id=%d", chefID, bookingID)
		return nil, ErrAccessDenied
	}

	if from, to, changed := s.applyLifecycle(ctx, booking); changed {
		s.publish(ctx, booking, from, to)
	}

	if err := s.bookingRepo.MarkPaid(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkPaid: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	booking.IsPaid = true
	s.logger.Info("MarkPaid: booking id=%d marked as paid", bookingID)
	return models.FromDomainBooking(booking), nil
}

// evaluateAndRank прогоняет каждую запись через lifecycle engine и
// сортирует список по фиксированной таблице приоритетов.
// Ранг вычисляется после ленивых переходов: истекшая запись сортируется
// как expired, а не как pending.
func (s *Service) evaluateAndRank(ctx context.Context, bookingsList []*domain.Booking) {
	for _, booking := range bookingsList {
		if from, to, changed := s.applyLifecycle(ctx, booking); changed {
			s.publish(ctx, booking, from, to)
		}
	}

	sort.SliceStable(bookingsList, func(i, j int) bool {
		return domain.Rank(bookingsList[i].Status, bookingsList[i].BookingType) <
			domain.Rank(bookingsList[j].Status, bookingsList[j].BookingType)
	})
}

// applyLifecycle применяет ленивый временной переход, если он наступил.
// Переходы не падают: это безусловные факты, выведенные из времени.
// Ошибка записи логируется, вычисленный статус все равно отдается наружу.
// Событие не публикуется здесь: вызывающий решает, когда переход
// зафиксирован (сразу на чтении, после коммита в транзакции).
func (s *Service) applyLifecycle(ctx context.Context, booking *domain.Booking) (from, to domain.BookingStatus, changed bool) {
	next, ok := s.lifecycle.Next(booking)
	if !ok {
		return booking.Status, booking.Status, false
	}

	from = booking.Status
	now := s.lifecycle.Now()

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, next, now); err != nil {
		s.logger.Error("applyLifecycle: failed to persist %s → %s for booking id=%d: %v",
			from, next, booking.ID, err)
	}

	booking.Status = next
	booking.StatusUpdatedAt = &now

	s.logger.Info("applyLifecycle: booking id=%d transitioned %s → %s", booking.ID, from, next)
	return from, next, true
}

// publish отправляет событие смены статуса, если publisher сконфигурирован
func (s *Service) publish(ctx context.Context, booking *domain.Booking, from, to domain.BookingStatus) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStatusChange(ctx, booking, from, to); err != nil {
		s.logger.Error("publish: failed to publish status event for booking id=%d: %v", booking.ID, err)
	}
}
