package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newThrottle(t *testing.T) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client), srv
}

func TestLoginThrottle_AllowsUntilLimit(t *testing.T) {
	throttle, _ := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < throttleMaxFailures; i++ {
		ok, err := throttle.Allow(ctx, "ann@x.com", "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !ok {
			t.Fatalf("Allow() = false after %d failures, want true", i)
		}
		if err := throttle.RecordFailure(ctx, "ann@x.com", "10.0.0.1"); err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
	}

	ok, err := throttle.Allow(ctx, "ann@x.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if ok {
		t.Fatal("Allow() = true at the failure limit, want false")
	}

	// A different IP for the same email has its own counter.
	ok, err = throttle.Allow(ctx, "ann@x.com", "10.0.0.2")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !ok {
		t.Fatal("Allow() = false for an unrelated IP, want true")
	}
}

func TestLoginThrottle_FirstFailureStartsWindow(t *testing.T) {
	throttle, srv := newThrottle(t)
	ctx := context.Background()

	if err := throttle.RecordFailure(ctx, "ann@x.com", "10.0.0.1"); err != nil {
		t.Fatalf("RecordFailure() error = %v", err)
	}

	key := throttle.key("ann@x.com", "10.0.0.1")
	if ttl := srv.TTL(key); ttl <= 0 || ttl > throttleWindow {
		t.Fatalf("counter TTL = %v, want within (0, %v]", ttl, throttleWindow)
	}
}

func TestLoginThrottle_RepairsCounterWithoutWindow(t *testing.T) {
	throttle, srv := newThrottle(t)
	ctx := context.Background()

	// A counter with no TTL, as left by a process that stopped between
	// incrementing and setting the expiry.
	key := throttle.key("ann@x.com", "10.0.0.1")
	if err := srv.Set(key, "3"); err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	if err := throttle.RecordFailure(ctx, "ann@x.com", "10.0.0.1"); err != nil {
		t.Fatalf("RecordFailure() error = %v", err)
	}

	if ttl := srv.TTL(key); ttl <= 0 {
		t.Fatalf("counter TTL = %v after RecordFailure, want a bounded window", ttl)
	}
	n, err := throttle.client.Get(ctx, key).Int64()
	if err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if n != 4 {
		t.Fatalf("counter = %d, want 4", n)
	}
}

func TestLoginThrottle_WindowExpiryClearsCounter(t *testing.T) {
	throttle, srv := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < throttleMaxFailures; i++ {
		if err := throttle.RecordFailure(ctx, "ann@x.com", "10.0.0.1"); err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
	}
	srv.FastForward(throttleWindow)

	ok, err := throttle.Allow(ctx, "ann@x.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !ok {
		t.Fatal("Allow() = false after the window elapsed, want true")
	}
}

func TestLoginThrottle_ResetClearsCounter(t *testing.T) {
	throttle, _ := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < throttleMaxFailures; i++ {
		if err := throttle.RecordFailure(ctx, "ann@x.com", "10.0.0.1"); err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
	}
	if err := throttle.Reset(ctx, "ann@x.com", "10.0.0.1"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	ok, err := throttle.Allow(ctx, "ann@x.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !ok {
		t.Fatal("Allow() = false after Reset, want true")
	}
}
