package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the bucket capacity", func(t *testing.T) {
		limiter := NewTokenBucketLimiter(3, time.Hour)

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(ctx, "client-a")
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("buckets are independent per key", func(t *testing.T) {
		limiter := NewTokenBucketLimiter(1, time.Hour)

		allowed, _ := limiter.Allow(ctx, "client-a")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow(ctx, "client-a")
		assert.False(t, allowed)

		allowed, _ = limiter.Allow(ctx, "client-b")
		assert.True(t, allowed)
	})

	t.Run("reset restores a drained bucket", func(t *testing.T) {
		limiter := NewTokenBucketLimiter(1, time.Hour)

		allowed, _ := limiter.Allow(ctx, "client-a")
		require.True(t, allowed)
		allowed, _ = limiter.Allow(ctx, "client-a")
		require.False(t, allowed)

		require.NoError(t, limiter.Reset(ctx, "client-a"))
		allowed, _ = limiter.Allow(ctx, "client-a")
		assert.True(t, allowed)
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		limiter := NewTokenBucketLimiter(1, 10*time.Millisecond)

		allowed, _ := limiter.Allow(ctx, "client-a")
		require.True(t, allowed)
		allowed, _ = limiter.Allow(ctx, "client-a")
		require.False(t, allowed)

		time.Sleep(25 * time.Millisecond)
		allowed, _ = limiter.Allow(ctx, "client-a")
		assert.True(t, allowed)
	})
}
