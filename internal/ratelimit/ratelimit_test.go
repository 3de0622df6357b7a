package ratelimit

import (
	"testing"
	"time"
)

func TestInMemoryLimiter_BurstPerKey(t *testing.T) {
	t.Parallel()

	l := NewInMemoryLimiter(1, time.Hour, 2)

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("first two requests should fit in the burst")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("a different key has its own bucket")
	}
}

func TestInMemoryLimiter_ZeroRequestsIsUnlimited(t *testing.T) {
	t.Parallel()

	l := NewInMemoryLimiter(0, time.Minute, 1)
	for i := 0; i < 100; i++ {
		if !l.Allow("k") {
			t.Fatalf("request %d limited, want unlimited", i)
		}
	}
}

func TestInMemoryLimiter_EvictsIdleKeys(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	l := NewInMemoryLimiter(1, time.Minute, 2)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	for _, key := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if !l.Allow(key) {
			t.Fatalf("first request from %s should pass", key)
		}
	}
	if len(l.clients) != 3 {
		t.Fatalf("tracked %d keys, want 3", len(l.clients))
	}

	now = now.Add(90 * time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatal("request within a refilled burst should pass")
	}
	if len(l.clients) != 3 {
		t.Fatalf("tracked %d keys before the idle period elapsed, want 3", len(l.clients))
	}

	now = now.Add(2 * time.Minute)
	if !l.Allow("10.0.0.4") {
		t.Fatal("new key should pass")
	}
	if len(l.clients) != 1 {
		t.Fatalf("tracked %d keys after the sweep, want only the new one", len(l.clients))
	}
}

func TestInMemoryLimiter_IdleSweepKeepsLimitsForActiveKeys(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	l := NewInMemoryLimiter(1, time.Hour, 1)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	if !l.Allow("k") {
		t.Fatal("first request should pass")
	}
	now = now.Add(30 * time.Minute)
	if l.Allow("k") {
		t.Fatal("second request inside the window should be limited")
	}
	if len(l.clients) != 1 {
		t.Fatalf("active key was evicted, tracked %d keys", len(l.clients))
	}
}
