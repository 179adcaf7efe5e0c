// Package redis wires the Redis pieces of the hostel API: the connection
// helper and the login-attempt throttle. The same client also serves the
// readiness probe.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hostelhub/hostel-api/internal/infrastructure/config"
)

const pingTimeout = 5 * time.Second

// Connect dials Redis and verifies connectivity before the client is handed
// to the throttle and the readiness handler. Failure here aborts startup;
// the throttle itself fails open at request time.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: "hostel-api",
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
