package ratelimiter

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter allows limit requests per key in each window.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window //key: client IP
	limit   int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	rl := newFixedWindow(limit, w, time.Now)
	go rl.cleanup()
	return rl
}

func newFixedWindow(limit int, w time.Duration, now func() time.Time) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Allow counts a request for key. When the key is over its limit it returns
// false and the time left until the window resets.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.clients[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, rl.window - now.Sub(w.start)
}

// Stop ends the background sweep.
func (rl *FixedWindowRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *FixedWindowRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

func (rl *FixedWindowRateLimiter) sweep() {
	rl.Lock()
	defer rl.Unlock()
	now := rl.now()
	for key, w := range rl.clients {
		if now.Sub(w.start) >= rl.window {
			delete(rl.clients, key)
		}
	}
}
