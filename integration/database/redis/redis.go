package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config provides environment-based configuration for the Redis connection.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix namespaces every key written by this application.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:""`
}

// Connect creates a Redis client and verifies connectivity with a ping,
// retrying transient failures before giving up.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := goredis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	client := goredis.NewClient(opts)

	attempts := max(cfg.RetryAttempts, 1)

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if lastErr = client.Ping(connectCtx).Err(); lastErr == nil {
			return client, nil
		}
		if attempt < attempts-1 {
			select {
			case <-connectCtx.Done():
				lastErr = connectCtx.Err()
			case <-time.After(cfg.RetryInterval):
				continue
			}
			break
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// Healthcheck returns a probe suitable for readiness endpoints.
func Healthcheck(client *goredis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrConnectionFailed, err)
		}
		return nil
	}
}
