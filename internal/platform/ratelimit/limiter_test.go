package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewRedisLimiter(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisLimiter(client)

	assert.NotNil(t, limiter, "limiter is nil")
	assert.EqualValues(t, 5, limiter.limit)
	assert.Equal(t, 10*time.Minute, limiter.window)
}

func TestNewRedisLimiterWithConfig(t *testing.T) {
	client, _ := setupTestRedis(t)

	tests := []struct {
		name       string
		limit      int64
		window     time.Duration
		wantLimit  int64
		wantWindow time.Duration
	}{
		{"explicit values", 3, time.Minute, 3, time.Minute},
		{"zero values fall back to defaults", 0, 0, 5, 10 * time.Minute},
		{"negative values fall back to defaults", -1, -time.Second, 5, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRedisLimiterWithConfig(client, tt.limit, tt.window)
			assert.Equal(t, tt.wantLimit, limiter.limit)
			assert.Equal(t, tt.wantWindow, limiter.window)
		})
	}
}

func TestRedisLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		limiter := NewRedisLimiterWithConfig(client, 3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, allowed, "request %d within the limit was blocked", i+1)
		}

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, allowed, "request over the limit was allowed")
	})

	t.Run("clients are counted independently", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		limiter := NewRedisLimiterWithConfig(client, 1, time.Minute)

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, allowed, "a different client was blocked")

		allowed, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		limiter := NewRedisLimiterWithConfig(client, 1, time.Minute)

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, allowed)

		// ウィンドウ経過後はカウンタがTTLで消える
		mr.FastForward(time.Minute + time.Second)

		allowed, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "counter did not reset after the window")
	})

	t.Run("backend failure surfaces as an error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectIncr("ratelimit:10.0.0.1").SetErr(errors.New("connection refused"))

		limiter := NewRedisLimiter(db)
		allowed, err := limiter.Allow(ctx, "10.0.0.1")

		assert.Error(t, err, "backend failure was swallowed")
		assert.False(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
