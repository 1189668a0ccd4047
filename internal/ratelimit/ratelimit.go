// Package ratelimit provides a per-key token bucket limiter for
// throttling request sources such as client IPs.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Idle entries are dropped so one-off clients do not accumulate forever.
const (
	evictAfter    = 10 * time.Minute
	evictInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter hands out an independent token bucket per key and
// evicts buckets that have been idle for a while.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed rate limiter allowing rps requests per second with
// the given burst per key, and starts the eviction loop.
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.evictLoop()

	return krl
}

// Allow reports whether a request for the given key should proceed.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	krl.mu.Lock()
	cl, ok := krl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	krl.mu.Unlock()

	return cl.limiter.Allow()
}

// Stop shuts down the eviction loop.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) evictLoop() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case now := <-ticker.C:
			krl.evictIdle(now)
		}
	}
}

func (krl *KeyedRateLimiter) evictIdle(now time.Time) {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	for key, cl := range krl.clients {
		if now.Sub(cl.lastSeen) > evictAfter {
			delete(krl.clients, key)
		}
	}
}

// size reports the number of tracked keys.
func (krl *KeyedRateLimiter) size() int {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	return len(krl.clients)
}
