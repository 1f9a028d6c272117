package analytics

import (
	"sync"
	"time"
)

// Limiter is a sliding-window rate limiter keyed by hashed IP. It keeps the
// collect endpoint from being flooded by a single client.
type Limiter struct {
	mu      sync.Mutex
	events  map[string][]time.Time
	max     int
	window  time.Duration
	stop    chan struct{}
	stopped sync.Once
}

// NewLimiter allows at most max events per key within window. A background
// goroutine prunes idle keys; call Stop when the limiter is no longer needed.
func NewLimiter(max int, window time.Duration) *Limiter {
	l := &Limiter{
		events: make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.prune()
	return l
}

// Allow reports whether another event for key fits in the window and records
// it when it does.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	kept := l.events[key][:0]
	for _, t := range l.events[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.events[key] = kept
		return false
	}
	l.events[key] = append(kept, now)
	return true
}

// Stop terminates the background pruning goroutine.
func (l *Limiter) Stop() {
	l.stopped.Do(func() { close(l.stop) })
}

func (l *Limiter) prune() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-l.window)
			l.mu.Lock()
			for key, times := range l.events {
				kept := times[:0]
				for _, t := range times {
					if t.After(cutoff) {
						kept = append(kept, t)
					}
				}
				if len(kept) == 0 {
					delete(l.events, key)
				} else {
					l.events[key] = kept
				}
			}
			l.mu.Unlock()
		}
	}
}
