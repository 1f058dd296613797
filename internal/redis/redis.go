// Package redis opens the session backend connection.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/matmo1/Another-book-store/internal/logger"
)

type Client struct {
	*goredis.Client
}

var pingBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
}

// New connects to addr and waits until the server answers PING.
func New(ctx context.Context, addr, password string) (*Client, error) {

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	attempt := 0
	err := retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		attempt++

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis not ready", map[string]any{
				"addr":    addr,
				"attempt": attempt,
				"error":   err.Error(),
			})
			return retry.RetryableError(err)
		}
		return nil
	})

	if err != nil {
		_ = client.Close()
		return nil, oops.Code("REDIS_UNAVAILABLE").
			With("addr", addr).
			With("attempts", attempt).
			Wrap(err)
	}

	return &Client{Client: client}, nil

}
