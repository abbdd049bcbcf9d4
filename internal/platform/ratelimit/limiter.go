// Package ratelimit provides the optional request rate-limit capability for
// the auth endpoints. The limiter is a collaborator that may be absent: when
// no Redis is configured the capability is nil and requests pass through
// unchecked (fail-open). When configured, a backend failure is surfaced to
// the caller instead of being swallowed.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Defaults match the reference limit of 5 requests per 10 minutes per client.
const (
	defaultLimit  = 5
	defaultWindow = 10 * time.Minute
	defaultPrefix = "ratelimit"
)

// Limiter answers whether one more request from the given client key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements a fixed-window counter in Redis. Each window is a
// counter keyed by client identifier with a TTL of the window length.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter with the default limit and window.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  defaultLimit,
		window: defaultWindow,
		prefix: defaultPrefix,
	}
}

// NewRedisLimiterWithConfig creates a limiter with explicit parameters.
// Zero or negative values fall back to the defaults.
func NewRedisLimiterWithConfig(client *redis.Client, limit int64, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &RedisLimiter{client: client, limit: limit, window: window, prefix: defaultPrefix}
}

func (l *RedisLimiter) key(clientKey string) string {
	return fmt.Sprintf("%s:%s", l.prefix, clientKey)
}

// Allow increments the client's window counter and reports whether the count
// is still within the limit. The first hit of a window sets its TTL.
func (l *RedisLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	k := l.key(clientKey)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit check failed: %w", err)
		}
	}
	return n <= l.limit, nil
}
