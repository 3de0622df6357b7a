package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// InMemoryLimiter keeps one token bucket per key. A bucket left idle long
// enough to refill completely is dropped, since a fresh one behaves the same.
type InMemoryLimiter struct {
	clients   map[string]*client
	mu        sync.Mutex
	r         rate.Limit
	b         int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewInMemoryLimiter allows requests per window with the given burst.
// Example: NewInMemoryLimiter(5, time.Minute, 3) -> one request every 12 seconds, burst of 3.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if burst < 1 {
		burst = 1
	}

	l := &InMemoryLimiter{
		clients: make(map[string]*client),
		r:       rate.Inf,
		b:       burst,
		now:     time.Now,
	}
	if requests > 0 && per > 0 {
		interval := per / time.Duration(requests)
		l.r = rate.Every(interval)
		l.idle = time.Duration(burst) * interval
	}
	l.lastSweep = l.now()

	return l
}

func (l *InMemoryLimiter) Allow(key string) bool {
	if l.r == rate.Inf {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, exists := l.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// sweep runs at most once per idle period. Caller holds mu.
func (l *InMemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.idle {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

var _ Limiter = (*InMemoryLimiter)(nil)
