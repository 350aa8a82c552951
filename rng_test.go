package pais

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRNG(t *testing.T) {
	t.Run("same seed reproduces the sequence", func(t *testing.T) {
		a := NewSeededRNG(42)
		b := NewSeededRNG(42)

		for i := 0; i < 100; i++ {
			assert.Equal(t, a.Intn(1000), b.Intn(1000))
			assert.Equal(t, a.Float64(), b.Float64())
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a := NewSeededRNG(1)
		b := NewSeededRNG(2)

		same := true
		for i := 0; i < 20; i++ {
			if a.Intn(1 << 30) != b.Intn(1 << 30) {
				same = false
			}
		}
		assert.False(t, same)
	})
}

func TestSecureRNG(t *testing.T) {
	rng := NewSecureRNG(64)

	t.Run("Float64 stays in [0,1)", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := rng.Float64()
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
	})

	t.Run("Intn stays in [0,n)", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := rng.Intn(37)
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, 37)
		}
	})

	t.Run("Intn panics on non-positive n", func(t *testing.T) {
		assert.Panics(t, func() { rng.Intn(0) })
		assert.Panics(t, func() { rng.Intn(-5) })
	})

	t.Run("cache refills past its size", func(t *testing.T) {
		small := NewSecureRNG(8)
		for i := 0; i < 50; i++ {
			small.Float64()
		}
	})

	t.Run("default cache size applies", func(t *testing.T) {
		assert.NotNil(t, NewSecureRNG())
		assert.NotNil(t, NewSecureRNG(-1))
	})
}
