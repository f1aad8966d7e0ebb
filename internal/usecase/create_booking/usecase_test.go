package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PPB-BookingService/internal/domain"
)

// fakeRepo in-memory репозиторий с той же полуоткрытой семантикой пересечений
type fakeRepo struct {
	bookings []*domain.Booking
	nextID   int64
	failWith error
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *fakeRepo) GetConflicting(_ context.Context, date time.Time, startAt, endAt time.Time, excludeID *int64) ([]*domain.Booking, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct{ flushed int }

func (c *fakeCache) Flush() { c.flushed++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeRepo, cache *fakeCache, now time.Time) *UseCase {
	return &UseCase{
		bookingRepo:  repo,
		txManager:    fakeTxManager{},
		viewCache:    cache,
		timeProvider: fixedTime{now: now},
		logger:       nopLogger{},
	}
}

func validRequest() *Request {
	return &Request{
		Name:      "Jan Nowak",
		Email:     "jan@example.com",
		Phone:     "+48555123456",
		Intention: "Confession",
		Date:      "2024-03-01",
		StartTime: "09:00",
		EndTime:   "09:30",
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2024, time.February, 20, 10, 0, 0, 0, time.Local)

	t.Run("creates confirmed booking and flushes cache", func(t *testing.T) {
		repo := &fakeRepo{}
		cache := &fakeCache{}
		uc := newTestUseCase(repo, cache, now)

		created, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, created.Status)
		assert.NotZero(t, created.ID)
		assert.True(t, created.EndAt.After(created.StartAt))
		assert.Equal(t, 1, cache.flushed)
	})

	t.Run("overlapping confirmed booking conflicts", func(t *testing.T) {
		repo := &fakeRepo{}
		cache := &fakeCache{}
		uc := newTestUseCase(repo, cache, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		overlapping := validRequest()
		overlapping.StartTime = "09:15"
		overlapping.EndTime = "09:45"

		_, err = uc.Execute(context.Background(), overlapping)
		assert.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, 1, cache.flushed, "conflicting request must not flush the cache")
	})

	t.Run("adjacent slot does not conflict", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := newTestUseCase(repo, &fakeCache{}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		adjacent := validRequest()
		adjacent.StartTime = "09:30"
		adjacent.EndTime = "10:00"

		_, err = uc.Execute(context.Background(), adjacent)
		assert.NoError(t, err)
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := newTestUseCase(repo, &fakeCache{}, now)

		created, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		created.Status = domain.StatusCancelled

		_, err = uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("validation failures", func(t *testing.T) {
		testCases := []struct {
			name    string
			mutate  func(*Request)
			wantErr error
		}{
			{"missing name", func(r *Request) { r.Name = "" }, ErrMissingFields},
			{"missing email", func(r *Request) { r.Email = "" }, ErrMissingFields},
			{"missing phone", func(r *Request) { r.Phone = "" }, ErrMissingFields},
			{"bad date", func(r *Request) { r.Date = "03/01/2024" }, domain.ErrInvalidFormat},
			{"bad time", func(r *Request) { r.StartTime = "9:00am" }, domain.ErrInvalidFormat},
			{"inverted range", func(r *Request) { r.StartTime, r.EndTime = "10:00", "09:00" }, domain.ErrInvalidRange},
			{"past date", func(r *Request) { r.Date = "2024-02-19" }, domain.ErrPastDate},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				uc := newTestUseCase(&fakeRepo{}, &fakeCache{}, now)
				req := validRequest()
				tc.mutate(req)

				_, err := uc.Execute(context.Background(), req)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("intention is optional", func(t *testing.T) {
		uc := newTestUseCase(&fakeRepo{}, &fakeCache{}, now)
		req := validRequest()
		req.Intention = ""

		created, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, created.Intention)
	})
}
