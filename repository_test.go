package pais

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDrawRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchAll returns records ascending by draw number", func(t *testing.T) {
		repo := NewInMemoryDrawRepository()
		require.NoError(t, repo.Append(ctx, testDraw(300, []int{1, 2, 3, 4, 5, 6}, 1)))
		require.NoError(t, repo.Append(ctx, testDraw(100, []int{7, 8, 9, 10, 11, 12}, 2)))
		require.NoError(t, repo.Append(ctx, testDraw(200, []int{13, 14, 15, 16, 17, 18}, 3)))

		records, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, 100, records[0].DrawNumber)
		assert.Equal(t, 200, records[1].DrawNumber)
		assert.Equal(t, 300, records[2].DrawNumber)
		assert.Equal(t, 3, repo.Len())
	})

	t.Run("Append rejects duplicate draw numbers", func(t *testing.T) {
		repo := NewInMemoryDrawRepository()
		record := testDraw(100, []int{1, 2, 3, 4, 5, 6}, 1)
		require.NoError(t, repo.Append(ctx, record))

		err := repo.Append(ctx, record)
		assert.ErrorIs(t, err, ErrDuplicateDraw)
		assert.Equal(t, 1, repo.Len())
	})

	t.Run("Append rejects invalid records", func(t *testing.T) {
		repo := NewInMemoryDrawRepository()

		err := repo.Append(ctx, testDraw(100, []int{1, 2, 3, 4, 5, 38}, 1))
		assert.ErrorIs(t, err, ErrValidation)

		err = repo.Append(ctx, testDraw(101, []int{1, 2, 3, 4, 5, 6}, 0))
		assert.ErrorIs(t, err, ErrValidation)

		assert.Equal(t, 0, repo.Len())
	})

	t.Run("stored records are isolated from caller slices", func(t *testing.T) {
		repo := NewInMemoryDrawRepository()
		numbers := []int{1, 2, 3, 4, 5, 6}
		require.NoError(t, repo.Append(ctx, testDraw(100, numbers, 1)))

		numbers[0] = 30

		records, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, records[0].MainNumbers)
	})

	t.Run("a cancelled context aborts operations", func(t *testing.T) {
		repo := NewInMemoryDrawRepository()
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.FetchAll(cancelled)
		assert.ErrorIs(t, err, context.Canceled)

		err = repo.Append(cancelled, testDraw(100, []int{1, 2, 3, 4, 5, 6}, 1))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
