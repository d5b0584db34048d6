// Package ratelimit throttles OTP issuance per phone number. The redis
// limiter uses a SetNX key with a TTL; without redis configured the nop
// limiter allows everything.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether an action keyed by id may run now.
type Limiter interface {
	Allow(ctx context.Context, id string) (bool, error)
}

type redisLimiter struct {
	rdb    *redis.Client
	prefix string
	window time.Duration
}

// NewRedisLimiter returns a Limiter allowing one action per id per window.
func NewRedisLimiter(rdb *redis.Client, prefix string, window time.Duration) Limiter {
	return &redisLimiter{rdb: rdb, prefix: prefix, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, id string) (bool, error) {
	return l.rdb.SetNX(ctx, l.prefix+":"+id, "1", l.window).Result()
}

type nopLimiter struct{}

// NewNopLimiter returns a Limiter that never throttles.
func NewNopLimiter() Limiter {
	return nopLimiter{}
}

func (nopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
