package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	"github.com/m04kA/PPB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PPB-BookingService/pkg/psqlbuilder"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"intention",
	"booking_date",
	"start_time",
	"end_time",
	"start_at",
	"end_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint на пересечение подтверждённых слотов
// возвращается как ErrSlotConflict — последний рубеж против гонки
// конкурентных созданий, не пойманной проверкой в usecase.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"name",
			"email",
			"phone",
			"intention",
			"booking_date",
			"start_time",
			"end_time",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			booking.Name,
			booking.Email,
			booking.Phone,
			booking.Intention,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, r.mapExecError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, r.mapExecError("GetByID - scan booking", err)
	}

	return booking, nil
}

// GetConflicting получает подтверждённые бронирования указанной даты,
// пересекающиеся с интервалом [startAt, endAt) по полуоткрытой семантике.
// Касание границ пересечением не считается.
// excludeID исключает из сравнения собственную запись (переподтверждение).
// Внутри транзакции строки блокируются через FOR UPDATE
func (r *Repository) GetConflicting(ctx context.Context, date time.Time, startAt, endAt time.Time, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_at": endAt}).
		Where(squirrel.Gt{"end_at": startAt}).
		OrderBy("start_at ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConflicting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapExecError("GetConflicting - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Окно по start_at полуоткрытое: [StartAt, EndAt)
// Результат всегда отсортирован по start_at по возрастанию
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		OrderBy("start_at ASC")

	if filter.StartAt != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartAt})
	}
	if filter.EndAt != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.EndAt})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapExecError("GetWithFilter - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования и возвращает новое
// значение updated_at, чтобы вызывающий мог отдать его клиенту без
// повторного чтения
// Перевод в confirmed может быть отклонён exclusion constraint'ом — ErrSlotConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, r.mapExecError("UpdateStatus - execute update", err)
	}

	return updatedAt.Time, nil
}

// scanBooking сканирует одну строку результата в бронирование
func (r *Repository) scanBooking(row squirrel.RowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Intention,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
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

// mapExecError переводит ошибки драйвера в ошибки репозитория
func (r *Repository) mapExecError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23P01 exclusion_violation — пересечение подтверждённых слотов
		if pqErr.Code == "23P01" {
			return fmt.Errorf("%w: %s", ErrSlotConflict, op)
		}
		// Class 08 — connection exception
		if pqErr.Code.Class() == "08" {
			return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
		}
	}

	if isConnectionError(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

// isConnectionError различает сетевые ошибки и потерю соединения
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
