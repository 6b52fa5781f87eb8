package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter tuning parameters.
type Config struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
}

// Limiter enforces a per-scope, per-address fixed-window attempt budget
// using Redis counters. Every attempt counts against the budget, successful
// or not.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Allow records one attempt for the scope+address pair and reports whether
// it is within budget. An empty address skips counting (no identity to bind
// the budget to). Returns [ErrRateLimited] once the budget is exceeded.
func (l *Limiter) Allow(ctx context.Context, scope, addr string) error {
	if l == nil || !l.config.Enabled || addr == "" {
		return nil
	}

	count, err := l.incrementWithTTL(ctx, key(scope, addr), l.config.Window)
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}

	return nil
}

// Attempts returns the current counter for the scope+address pair. Missing
// keys return zero.
func (l *Limiter) Attempts(ctx context.Context, scope, addr string) (int, error) {
	count, err := l.redis.Get(ctx, key(scope, addr)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}

func key(scope, addr string) string {
	return "agrl:" + scope + ":" + addr
}
