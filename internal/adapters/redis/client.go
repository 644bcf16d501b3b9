// Package redis holds the Redis-backed login limiter and audit stream.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"userhub/internal/logger"
)

func NewClient(ctx context.Context, url string, log logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis not responding: %w", err)
	}

	log.Info("redis connection established successfully", "addr", opts.Addr)

	return client, nil
}
