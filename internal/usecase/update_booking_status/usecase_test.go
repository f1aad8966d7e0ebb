package update_booking_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PPB-BookingService/internal/infra/storage/booking"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	now      time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[int64]*domain.Booking),
		now:      time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) add(id int64, date, start, end string, status domain.BookingStatus) *domain.Booking {
	slot, err := domain.NewSlot(date, start, end)
	if err != nil {
		panic(err)
	}
	b := &domain.Booking{
		ID:        id,
		Name:      "Visitor",
		Email:     "visitor@example.com",
		Phone:     "+48111222333",
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		StartAt:   slot.StartAt,
		EndAt:     slot.EndAt,
		Status:    status,
	}
	r.bookings[id] = b
	return b
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetConflicting(_ context.Context, date time.Time, startAt, endAt time.Time, excludeID *int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !b.IsConfirmed() || !b.Date.Equal(date) {
			continue
		}
		if b.StartAt.Before(endAt) && startAt.Before(b.EndAt) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (time.Time, error) {
	b, ok := r.bookings[id]
	if !ok {
		return time.Time{}, bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = r.now
	return r.now, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct{ flushed int }

func (c *fakeCache) Flush() { c.flushed++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	t.Run("confirming over an overlapping confirmed booking conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(1, "2024-03-01", "09:00", "09:30", domain.StatusConfirmed)
		repo.add(2, "2024-03-01", "09:15", "09:45", domain.StatusCancelled)

		uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, nopLogger{})

		_, err := uc.Execute(context.Background(), 2, "confirmed")
		assert.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, domain.StatusCancelled, repo.bookings[2].Status)
	})

	t.Run("confirming a non-overlapping booking succeeds", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(1, "2024-03-01", "09:00", "09:30", domain.StatusConfirmed)
		repo.add(2, "2024-03-01", "09:30", "10:00", domain.StatusCancelled)

		cache := &fakeCache{}
		uc := NewUseCase(repo, fakeTxManager{}, cache, nopLogger{})

		updated, err := uc.Execute(context.Background(), 2, "confirmed")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, updated.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[2].Status)
		assert.Equal(t, 1, cache.flushed)
	})

	t.Run("returned booking carries the fresh updated_at", func(t *testing.T) {
		repo := newFakeRepo()
		stale := time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
		repo.add(1, "2024-03-01", "09:00", "09:30", domain.StatusConfirmed).UpdatedAt = stale

		uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, nopLogger{})

		updated, err := uc.Execute(context.Background(), 1, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, repo.now, updated.UpdatedAt)
	})

	t.Run("re-confirming an unchanged booking excludes itself", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(1, "2024-03-01", "09:00", "09:30", domain.StatusConfirmed)

		uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, nopLogger{})

		updated, err := uc.Execute(context.Background(), 1, "confirmed")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, updated.Status)
	})

	t.Run("cancelling never runs the conflict check", func(t *testing.T) {
		repo := newFakeRepo()
		// две пересекающиеся подтверждённые записи — состояние, которое
		// могло возникнуть до введения exclusion constraint
		repo.add(1, "2024-03-01", "09:00", "09:30", domain.StatusConfirmed)
		repo.add(2, "2024-03-01", "09:15", "09:45", domain.StatusConfirmed)

		uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, nopLogger{})

		updated, err := uc.Execute(context.Background(), 2, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, updated.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(1, "2024-03-01", "09:00", "09:30", domain.StatusConfirmed)

		uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, nopLogger{})

		_, err := uc.Execute(context.Background(), 1, "rejected")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("unknown booking id", func(t *testing.T) {
		uc := NewUseCase(newFakeRepo(), fakeTxManager{}, &fakeCache{}, nopLogger{})

		_, err := uc.Execute(context.Background(), 404, "cancelled")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
