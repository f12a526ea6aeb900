package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pingAttempts = 3
	pingInterval = 200 * time.Millisecond
)

// NewClient creates a new Redis client. The first ping is retried a few
// times so the server can start alongside Redis.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(pingInterval), pingAttempts-1), ctx)
	err = backoff.RetryNotify(func() error {
		return client.Ping(ctx).Err()
	}, b, func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Str("addr", opts.Addr).Msg("redis not ready, retrying")
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
