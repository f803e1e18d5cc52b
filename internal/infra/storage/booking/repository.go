package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/dbmetrics"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"chef_id",
	"dish_id",
	"slot",
	"booking_type",
	"booking_date",
	"address",
	"contact_number",
	"special_instructions",
	"status",
	"is_paid",
	"dish_name",
	"dish_price",
	"chef_name",
	"customer_name",
	"status_updated_at",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом pending.
// Если в контексте передана активная транзакция (через context.Value),
// использует её — пакетное создание нескольких бронирований из одного запроса
// должно быть атомарным целиком.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"chef_id",
			"dish_id",
			"slot",
			"booking_type",
			"booking_date",
			"address",
			"contact_number",
			"special_instructions",
			"status",
			"is_paid",
			"dish_name",
			"dish_price",
			"chef_name",
			"customer_name",
		).
		Values(
			booking.CustomerID,
			booking.ChefID,
			booking.DishID,
			booking.Slot,
			booking.BookingType,
			booking.Date,
			booking.Address,
			booking.ContactNumber,
			booking.SpecialInstructions,
			booking.Status,
			booking.IsPaid,
			booking.DishName,
			booking.DishPrice,
			booking.ChefName,
			booking.CustomerName,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции подтверждения блокируем строку: проверка конфликта
	// и запись статуса должны видеть согласованное состояние
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает все бронирования клиента
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	return r.getByOwner(ctx, "GetByCustomerID", squirrel.Eq{"customer_id": customerID})
}

// GetByChefID получает все бронирования повара
func (r *Repository) GetByChefID(ctx context.Context, chefID int64) ([]*domain.Booking, error) {
	return r.getByOwner(ctx, "GetByChefID", squirrel.Eq{"chef_id": chefID})
}

func (r *Repository) getByOwner(ctx context.Context, method string, cond squirrel.Eq) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(cond).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountConfirmed подсчитывает подтвержденные бронирования для ключа
// (повар, дата, слот, тип), опционально исключая одно бронирование.
//
// Инвариант: для такого ключа существует не более одного подтвержденного
// бронирования. Внутри транзакции запрос блокирует совпавшие строки
// (FOR UPDATE), чтобы два параллельных подтверждения не прошли проверку
// одновременно.
func (r *Repository) CountConfirmed(
	ctx context.Context,
	chefID int64,
	date time.Time,
	slot domain.Slot,
	bookingType domain.BookingType,
	excludeBookingID *int64,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{
			"chef_id":      chefID,
			"booking_date": date,
			"slot":         slot,
			"booking_type": bookingType,
			"status":       domain.StatusConfirmed,
		})

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountConfirmed - scan row: %v", ErrScanRow, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmed - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования и отметку времени смены статуса
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, statusUpdatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("status_updated_at", statusUpdatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkPaid выставляет флаг оплаты. Статус бронирования не меняется.
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_paid", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime
	var statusUpdatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ChefID,
		&booking.DishID,
		&booking.Slot,
		&booking.BookingType,
		&booking.Date,
		&booking.Address,
		&booking.ContactNumber,
		&booking.SpecialInstructions,
		&booking.Status,
		&booking.IsPaid,
		&booking.DishName,
		&booking.DishPrice,
		&booking.ChefName,
		&booking.CustomerName,
		&statusUpdatedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	if statusUpdatedAt.Valid {
		booking.StatusUpdatedAt = &statusUpdatedAt.Time
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
