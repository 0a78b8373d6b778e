package services

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiterSurfacesCause(t *testing.T) {
	// nothing listens here, so Incr fails at dial time
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewRedisRateLimiter(rdb, 5)
	err := limiter.Allow(context.Background(), "ann@example.com")
	require.Error(t, err)

	assert.NotErrorIs(t, err, ErrOtpRateLimited)
	// the wrapped error keeps the transport failure visible for the 500 log
	assert.Contains(t, err.Error(), "failed to increment otp rate limit")
	assert.NotEqual(t, "failed to increment otp rate limit", err.Error())
}
