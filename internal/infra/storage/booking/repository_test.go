package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	"github.com/m04kA/PPB-BookingService/pkg/ptr"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func testBooking(t *testing.T) *domain.Booking {
	slot, err := domain.NewSlot("2024-03-01", "09:00", "09:30")
	require.NoError(t, err)

	return &domain.Booking{
		Name:      "Maria Kovalenko",
		Email:     "maria@example.com",
		Phone:     "+48123456789",
		Intention: "Mass intention for a deceased relative",
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		StartAt:   slot.StartAt,
		EndAt:     slot.EndAt,
		Status:    domain.StatusConfirmed,
	}
}

func bookingRows(bookings ...*domain.Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows(bookingColumns)
	for _, b := range bookings {
		rows.AddRow(
			b.ID, b.Name, b.Email, b.Phone, b.Intention,
			b.Date, b.StartTime.String(), b.EndTime.String(),
			b.StartAt, b.EndAt, string(b.Status),
			b.CreatedAt, b.UpdatedAt,
		)
	}
	return rows
}

func TestRepository_Create(t *testing.T) {
	t.Run("assigns id and audit timestamps", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		booking := testBooking(t)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
			WithArgs(
				booking.Name, booking.Email, booking.Phone, booking.Intention,
				booking.Date, booking.StartTime, booking.EndTime,
				booking.StartAt, booking.EndAt, booking.Status,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), now, now))

		created, err := repo.Create(context.Background(), booking)
		require.NoError(t, err)

		assert.Equal(t, int64(42), created.ID)
		assert.Equal(t, now, created.CreatedAt)
		assert.Equal(t, now, created.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exclusion constraint maps to slot conflict", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		booking := testBooking(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
			WillReturnError(&pq.Error{Code: "23P01"})

		_, err := repo.Create(context.Background(), booking)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("connection failure maps to storage unavailable", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		booking := testBooking(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
			WillReturnError(&pq.Error{Code: "08006"})

		_, err := repo.Create(context.Background(), booking)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("round-trips stored fields", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		stored := testBooking(t)
		stored.ID = 7

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
			WithArgs(int64(7)).
			WillReturnRows(bookingRows(stored))

		got, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, stored.Name, got.Name)
		assert.Equal(t, stored.Email, got.Email)
		assert.Equal(t, stored.Phone, got.Phone)
		assert.Equal(t, stored.Intention, got.Intention)
		assert.Equal(t, stored.StartTime, got.StartTime)
		assert.Equal(t, stored.EndTime, got.EndTime)
		assert.Equal(t, stored.Status, got.Status)
	})

	t.Run("missing id", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRepository_GetConflicting(t *testing.T) {
	slot, err := domain.NewSlot("2024-03-01", "09:15", "09:45")
	require.NoError(t, err)

	t.Run("queries confirmed overlaps only", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		existing := testBooking(t)
		existing.ID = 3

		mock.ExpectQuery(`SELECT .+ FROM bookings WHERE booking_date = \$1 AND status = \$2 AND start_at < \$3 AND end_at > \$4 ORDER BY start_at ASC`).
			WithArgs(slot.Date, domain.StatusConfirmed, slot.EndAt, slot.StartAt).
			WillReturnRows(bookingRows(existing))

		conflicts, err := repo.GetConflicting(context.Background(), slot.Date, slot.StartAt, slot.EndAt, nil)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.Equal(t, int64(3), conflicts[0].ID)
	})

	t.Run("excludes own record", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`SELECT .+ AND id <> \$5 ORDER BY start_at ASC`).
			WithArgs(slot.Date, domain.StatusConfirmed, slot.EndAt, slot.StartAt, int64(3)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		conflicts, err := repo.GetConflicting(context.Background(), slot.Date, slot.StartAt, slot.EndAt, ptr.Ptr(int64(3)))
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})
}

func TestRepository_GetWithFilter(t *testing.T) {
	repo, mock := newTestRepository(t)

	windowStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local)
	windowEnd := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	status := domain.StatusConfirmed

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE start_at >= \$1 AND start_at < \$2 AND status = \$3 ORDER BY start_at ASC`).
		WithArgs(windowStart, windowEnd, status).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	filter := domain.BookingsFilter{
		StartAt: &windowStart,
		EndAt:   &windowEnd,
		Status:  &status,
	}

	bookings, err := repo.GetWithFilter(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("updates existing booking and returns new updated_at", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		newUpdatedAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`)).
			WithArgs(domain.StatusCancelled, int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(newUpdatedAt))

		updatedAt, err := repo.UpdateStatus(context.Background(), 5, domain.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, newUpdatedAt, updatedAt)
	})

	t.Run("missing id", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings`)).
			WithArgs(domain.StatusCancelled, int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateStatus(context.Background(), 99, domain.StatusCancelled)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("confirm rejected by exclusion constraint", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings`)).
			WithArgs(domain.StatusConfirmed, int64(5)).
			WillReturnError(&pq.Error{Code: "23P01"})

		_, err := repo.UpdateStatus(context.Background(), 5, domain.StatusConfirmed)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}
