// Package redis builds the shared Redis client backing the request rate
// limiter. No session or user state is kept here; the keys are short-lived
// counters only.
package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient は REDIS_HOST / REDIS_PORT / REDIS_PASSWORD からクライアントを
// 生成し、起動時に疎通を確認します。レートリミット用のカウンタのみを扱うため
// DB は 0 固定です。
func NewRedisClient() (*redis.Client, error) {
	addr := os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT")

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("rate limit backend unreachable", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("rate limit backend connected", "address", addr)
	return rdb, nil
}
