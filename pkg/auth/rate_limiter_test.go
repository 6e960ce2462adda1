package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		limiter := NewSlidingWindowLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(ctx, "user-1")
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewSlidingWindowLimiter(1, time.Minute)

		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "user-2")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("reset clears the window", func(t *testing.T) {
		limiter := NewSlidingWindowLimiter(1, time.Minute)

		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.False(t, allowed)

		require.NoError(t, limiter.Reset(ctx, "user-1"))

		allowed, err = limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window expiry admits new requests", func(t *testing.T) {
		limiter := NewSlidingWindowLimiter(1, 10*time.Millisecond)

		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, allowed)

		time.Sleep(20 * time.Millisecond)

		allowed, err = limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
