package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestFixedWindowLimiterRedis(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("third request should be blocked")
	}
	if !limiter.Allow("ip-2") {
		t.Fatalf("other keys have their own quota")
	}
}

func TestFixedWindowLimiterRedisFailClosed(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	redis.Close()
	if limiter.Allow("ip-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestFixedWindowLimiterMemory(t *testing.T) {
	limiter, err := NewMemoryFixedWindowLimiter(2, time.Minute)
	if err != nil {
		t.Fatalf("new memory limiter: %v", err)
	}
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	if !limiter.Allow("ip-1") || !limiter.Allow("ip-1") {
		t.Fatalf("requests within quota should pass")
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("third request should be blocked")
	}

	// The quota resets once the window rolls over.
	clock = clock.Add(time.Minute)
	if !limiter.Allow("ip-1") {
		t.Fatalf("request in the next window should pass")
	}
}

func TestFixedWindowLimiterRejectsBadSettings(t *testing.T) {
	if _, err := NewMemoryFixedWindowLimiter(0, time.Second); err == nil {
		t.Fatalf("expected constructor error for zero limit")
	}
	if _, err := NewRedisFixedWindowLimiter("", "", "test:ratelimit", 1, time.Second); err == nil {
		t.Fatalf("expected constructor error for empty redis addr")
	}
}

func TestNilLimiterAllows(t *testing.T) {
	var limiter *FixedWindowLimiter
	if !limiter.Allow("ip-1") {
		t.Fatalf("a nil limiter means throttling is disabled")
	}
}
