package pais

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepository fails FetchAll until healed
type flakyRepository struct {
	inner   *InMemoryDrawRepository
	failing bool
	calls   int
}

func (f *flakyRepository) FetchAll(ctx context.Context) ([]DrawRecord, error) {
	f.calls++
	if f.failing {
		return nil, errors.New("connection refused")
	}
	return f.inner.FetchAll(ctx)
}

func (f *flakyRepository) Append(ctx context.Context, record DrawRecord) error {
	if f.failing {
		return errors.New("connection refused")
	}
	return f.inner.Append(ctx, record)
}

func breakerTestConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Enabled:      true,
		Name:         "test-breaker",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func TestBreakerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("passes operations through while healthy", func(t *testing.T) {
		inner := NewInMemoryDrawRepository()
		repo := NewBreakerRepository(inner, breakerTestConfig(), NewSilentLogger())

		require.NoError(t, repo.Append(ctx, testDraw(100, []int{1, 2, 3, 4, 5, 6}, 1)))

		records, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("opens after repeated failures and sheds load", func(t *testing.T) {
		flaky := &flakyRepository{inner: NewInMemoryDrawRepository(), failing: true}
		repo := NewBreakerRepository(flaky, breakerTestConfig(), NewSilentLogger())

		for i := 0; i < 3; i++ {
			_, err := repo.FetchAll(ctx)
			require.Error(t, err)
		}

		callsBefore := flaky.calls
		_, err := repo.FetchAll(ctx)
		assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
		assert.Equal(t, callsBefore, flaky.calls, "an open breaker must not reach the store")
	})

	t.Run("domain rejections do not trip the breaker", func(t *testing.T) {
		inner := NewInMemoryDrawRepository()
		repo := NewBreakerRepository(inner, breakerTestConfig(), NewSilentLogger())

		record := testDraw(100, []int{1, 2, 3, 4, 5, 6}, 1)
		require.NoError(t, repo.Append(ctx, record))

		for i := 0; i < 10; i++ {
			err := repo.Append(ctx, record)
			assert.ErrorIs(t, err, ErrDuplicateDraw)
		}

		err := repo.Append(ctx, testDraw(101, []int{1, 2, 3, 4, 5, 38}, 1))
		assert.ErrorIs(t, err, ErrValidation)

		// Still closed: a fresh valid record goes through.
		require.NoError(t, repo.Append(ctx, testDraw(102, []int{7, 8, 9, 10, 11, 12}, 2)))
	})

	t.Run("disabled breaker is a passthrough", func(t *testing.T) {
		flaky := &flakyRepository{inner: NewInMemoryDrawRepository(), failing: true}
		config := breakerTestConfig()
		config.Enabled = false
		repo := NewBreakerRepository(flaky, config, NewSilentLogger())

		for i := 0; i < 10; i++ {
			_, err := repo.FetchAll(ctx)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrCircuitBreakerOpen)
		}
		assert.Equal(t, 10, flaky.calls)
	})

	t.Run("nil config uses the defaults", func(t *testing.T) {
		repo := NewBreakerRepository(NewInMemoryDrawRepository(), nil, NewSilentLogger())
		require.NoError(t, repo.Append(ctx, testDraw(100, []int{1, 2, 3, 4, 5, 6}, 1)))
	})
}
