package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	bookingRepo "github.com/Iqra-Naeem-05/easycook-backend/internal/infra/storage/booking"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/lifecycle"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings/models"
)

// Фейки зависимостей сервиса

type fakeRepo struct {
	bookings      map[int64]*domain.Booking
	confirmed     int
	statusUpdates []statusUpdate
}

type statusUpdate struct {
	id     int64
	status domain.BookingStatus
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	f := &fakeRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetByCustomerID(_ context.Context, customerID int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByChefID(_ context.Context, chefID int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ChefID == chefID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountConfirmed(_ context.Context, _ int64, _ time.Time, _ domain.Slot, _ domain.BookingType, _ *int64) (int, error) {
	return f.confirmed, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, statusUpdatedAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.StatusUpdatedAt = &statusUpdatedAt
	f.statusUpdates = append(f.statusUpdates, statusUpdate{id: id, status: status})
	return nil
}

func (f *fakeRepo) MarkPaid(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.IsPaid = true
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type publishedEvent struct {
	bookingID int64
	from      domain.BookingStatus
	to        domain.BookingStatus
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) PublishStatusChange(_ context.Context, b *domain.Booking, from, to domain.BookingStatus) error {
	f.events = append(f.events, publishedEvent{bookingID: b.ID, from: from, to: to})
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func karachi(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Karachi")
	require.NoError(t, err)
	return loc
}

func newTestService(t *testing.T, repo *fakeRepo, now time.Time) (*Service, *fakePublisher) {
	t.Helper()
	publisher := &fakePublisher{}
	engine := lifecycle.NewEngineWithTimeProvider(&fixedTime{now: now}, karachi(t))
	svc := NewService(repo, engine, fakeTxManager{}, publisher, nopLogger{})
	return svc, publisher
}

func TestService_GetCustomerBookings_LazyExpiry(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	// Срочное pending, созданное 20 минут назад: окно в 15 минут истекло
	stale := &domain.Booking{
		ID:          1,
		CustomerID:  7,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusPending,
		CreatedAt:   now.Add(-20 * time.Minute),
	}
	repo := newFakeRepo(stale)
	svc, publisher := newTestService(t, repo, now)

	resp, err := svc.GetCustomerBookings(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	// Переход применен и в ответе, и в хранилище
	assert.Equal(t, "expired", resp.Bookings[0].Status)
	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, domain.StatusExpired, repo.statusUpdates[0].status)

	// Событие перехода опубликовано
	require.Len(t, publisher.events, 1)
	assert.Equal(t, publishedEvent{bookingID: 1, from: domain.StatusPending, to: domain.StatusExpired}, publisher.events[0])
}

func TestService_GetCustomerBookings_Ranking(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)
	date := time.Date(2025, 10, 20, 0, 0, 0, 0, loc)

	mk := func(id int64, status domain.BookingStatus, bookingType domain.BookingType) *domain.Booking {
		return &domain.Booking{
			ID:          id,
			CustomerID:  7,
			Slot:        domain.SlotLunch,
			BookingType: bookingType,
			Date:        date,
			Status:      status,
			CreatedAt:   now,
		}
	}

	repo := newFakeRepo(
		mk(1, domain.StatusCancelled, domain.TypeUrgent),    // rank 7
		mk(2, domain.StatusPending, domain.TypePrebooking),  // rank 2
		mk(3, domain.StatusConfirmed, domain.TypeUrgent),    // rank 3
		mk(4, domain.StatusPending, domain.TypeUrgent),      // rank 1
		mk(5, domain.StatusRejected, domain.TypePrebooking), // rank 10
	)
	svc, _ := newTestService(t, repo, now)

	resp, err := svc.GetCustomerBookings(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 5)

	got := make([]int64, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		got = append(got, b.ID)
	}
	assert.Equal(t, []int64{4, 2, 3, 1, 5}, got)
}

func TestService_UpdateStatus_Confirm(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusPending,
		CreatedAt:   now.Add(-5 * time.Minute),
	}
	repo := newFakeRepo(booking)
	svc, publisher := newTestService(t, repo, now)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, resp.StatusUpdatedAt)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, publishedEvent{bookingID: 1, from: domain.StatusPending, to: domain.StatusConfirmed}, publisher.events[0])
}

func TestService_UpdateStatus_IdempotentSameStatus(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusConfirmed,
		CreatedAt:   now.Add(-5 * time.Minute),
	}
	// Другая подтвержденная запись на тот же ключ уже существует:
	// идемпотентный повтор не должен споткнуться о проверку конфликта
	repo := newFakeRepo(booking)
	repo.confirmed = 1
	svc, publisher := newTestService(t, repo, now)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Empty(t, repo.statusUpdates, "no-op must not touch storage")
	assert.Empty(t, publisher.events, "no-op must not publish events")
}

func TestService_UpdateStatus_ConfirmConflict(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusPending,
		CreatedAt:   now.Add(-5 * time.Minute),
	}
	repo := newFakeRepo(booking)
	repo.confirmed = 1
	svc, _ := newTestService(t, repo, now)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestService_UpdateStatus_ExpiredPendingCannotBeConfirmed(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	// Окно срочного заказа истекло: ленивый переход выполняется до проверки
	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusPending,
		CreatedAt:   now.Add(-30 * time.Minute),
	}
	repo := newFakeRepo(booking)
	svc, publisher := newTestService(t, repo, now)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusExpired, repo.bookings[1].Status)

	// Транзакция завершилась ошибкой: ленивый переход не должен породить событие
	assert.Empty(t, publisher.events, "failed transaction must not publish events")
}

func TestService_UpdateStatus_LazyEventAfterCommit(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 21, 0, 0, 0, loc)

	// Ужин закончился в 20:00: confirmed лениво переходит в completed,
	// а запрос на completed после этого идемпотентен
	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypePrebooking,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusConfirmed,
		CreatedAt:   now.Add(-24 * time.Hour),
	}
	repo := newFakeRepo(booking)
	svc, publisher := newTestService(t, repo, now)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, publishedEvent{bookingID: 1, from: domain.StatusConfirmed, to: domain.StatusCompleted}, publisher.events[0])
}

func TestService_UpdateStatus_InvalidInputs(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	booking := &domain.Booking{
		ID:          1,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 20, 0, 0, 0, 0, loc),
		Status:      domain.StatusCancelled,
		CreatedAt:   now,
	}
	repo := newFakeRepo(booking)
	svc, _ := newTestService(t, repo, now)

	// Неизвестный статус
	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "sleeping"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// expired нельзя выставить явно
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "expired"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Переход из терминального статуса
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Несуществующее бронирование
	_, err = svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_MarkPaid(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 16, 13, 0, 0, 0, loc)

	// Завершенное бронирование: оплату можно отметить и в терминальном статусе
	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, loc),
		Status:      domain.StatusCompleted,
		CreatedAt:   now.Add(-24 * time.Hour),
	}
	repo := newFakeRepo(booking)
	svc, _ := newTestService(t, repo, now)

	resp, err := svc.MarkPaid(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.True(t, repo.bookings[1].IsPaid)
}

func TestService_MarkPaid_AccessDenied(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Date(2025, 10, 15, 13, 0, 0, 0, loc)

	booking := &domain.Booking{
		ID:          1,
		ChefID:      20,
		Slot:        domain.SlotDinner,
		BookingType: domain.TypeUrgent,
		Date:        time.Date(2025, 10, 20, 0, 0, 0, 0, loc),
		Status:      domain.StatusConfirmed,
		CreatedAt:   now,
	}
	repo := newFakeRepo(booking)
	svc, _ := newTestService(t, repo, now)

	// Чужой повар не может отметить оплату
	_, err := svc.MarkPaid(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.bookings[1].IsPaid)

	// Несуществующее бронирование
	_, err = svc.MarkPaid(context.Background(), 42, 20)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
