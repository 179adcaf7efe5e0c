package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxFailures = 5
)

// LoginThrottle limits repeated failed logins per email+IP pair using a
// fixed-window counter. Key format: login_fail:<email>:<ip>
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// Allow reports whether another attempt is permitted for the pair.
func (t *LoginThrottle) Allow(ctx context.Context, email, remoteIP string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email, remoteIP)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < throttleMaxFailures, nil
}

// RecordFailure counts a failed attempt. The window starts with the first
// failure and is not extended by later ones. INCR and EXPIRE run in one
// transaction so the counter can never outlive its window; ExpireNX also
// repairs a TTL-less counter left behind by an interrupted earlier call.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email, remoteIP string) error {
	key := t.key(email, remoteIP)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, throttleWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email, remoteIP string) error {
	return t.client.Del(ctx, t.key(email, remoteIP)).Err()
}

func (t *LoginThrottle) key(email, remoteIP string) string {
	return fmt.Sprintf("login_fail:%s:%s", email, remoteIP)
}
