package pais

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictError(t *testing.T) {
	t.Run("Error formats code, message and details", func(t *testing.T) {
		err := NewError(ErrCodeValidation, "something broke")
		assert.Equal(t, "[PAIS_2005] something broke", err.Error())

		withDetails := err.WithDetails("field x")
		assert.Equal(t, "[PAIS_2005] something broke: field x", withDetails.Error())
	})

	t.Run("Is matches on error code", func(t *testing.T) {
		err := ErrDuplicateDraw.WithMetadata("draw_number", 3800)
		assert.ErrorIs(t, err, ErrDuplicateDraw)
		assert.NotErrorIs(t, err, ErrValidation)
	})

	t.Run("wrapped causes unwrap", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := ErrStoreSaveFailure.WithCause(cause)

		assert.ErrorIs(t, err, cause)

		var predictErr *PredictError
		require.ErrorAs(t, err, &predictErr)
		assert.Equal(t, ErrCodeStoreSaveFailure, predictErr.Code)
	})

	t.Run("With helpers clone instead of mutating", func(t *testing.T) {
		base := NewError(ErrCodeSystem, "base")
		modified := base.WithDetails("detail").WithOperation("op").WithMetadata("k", "v")

		assert.Empty(t, base.Details)
		assert.Empty(t, base.Operation)
		assert.Nil(t, base.Metadata)

		assert.Equal(t, "detail", modified.Details)
		assert.Equal(t, "op", modified.Operation)
		assert.Equal(t, "v", modified.Metadata["k"])
	})

	t.Run("severity constructors", func(t *testing.T) {
		critical := NewCriticalError(ErrCodeConfigInvalid, "bad config")
		assert.Equal(t, SeverityCritical, critical.Severity)
		assert.NotEmpty(t, critical.StackTrace)

		retryable := NewRetryableError(ErrCodeRedisTimeout, "timeout")
		assert.True(t, retryable.Retryable)
	})
}

func TestIsRetryableError(t *testing.T) {
	t.Run("nil is not retryable", func(t *testing.T) {
		assert.False(t, IsRetryableError(nil))
	})

	t.Run("PredictError uses its flag", func(t *testing.T) {
		assert.True(t, IsRetryableError(ErrStoreLoadFailure))
		assert.False(t, IsRetryableError(ErrDuplicateDraw))
		assert.False(t, IsRetryableError(ErrValidation))
	})

	t.Run("wrapped PredictError keeps its flag", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", ErrRedisTimeout)
		assert.True(t, IsRetryableError(wrapped))
	})

	t.Run("plain errors match known transient patterns", func(t *testing.T) {
		assert.True(t, IsRetryableError(errors.New("dial tcp 127.0.0.1:6379: connection refused")))
		assert.True(t, IsRetryableError(errors.New("read tcp: i/o timeout")))
		assert.False(t, IsRetryableError(errors.New("WRONGTYPE Operation against a key")))
	})
}
