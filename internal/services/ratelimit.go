package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpRateLimitPrefix = "otp_rate_limit:"

// redisRateLimiter caps OTP sends per email address per hour with a Redis
// counter that expires an hour after the first request in the window.
type redisRateLimiter struct {
	rdb     *redis.Client
	perHour int
}

func NewRedisRateLimiter(rdb *redis.Client, perHour int) RateLimiter {
	return &redisRateLimiter{rdb: rdb, perHour: perHour}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) error {
	rateLimitKey := otpRateLimitPrefix + key
	count, err := l.rdb.Incr(ctx, rateLimitKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment otp rate limit: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, rateLimitKey, time.Hour).Err(); err != nil {
			return fmt.Errorf("failed to set expiry for otp rate limit: %w", err)
		}
	} else if count > int64(l.perHour) {
		l.rdb.Decr(ctx, rateLimitKey)
		return ErrOtpRateLimited
	}
	return nil
}
