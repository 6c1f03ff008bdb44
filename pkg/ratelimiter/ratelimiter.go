package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Policy is the sliding window applied to one namespace
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// Limiter is an in-process sliding window limiter keyed by namespace and key.
// Namespaces without a policy are denied.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter and starts its janitor goroutine. Call Stop when done.
func New() *Limiter {
	l := newLimiter(time.Now)
	go l.janitor(time.Minute)
	return l
}

func newLimiter(now func() time.Time) *Limiter {
	return &Limiter{
		attempts: make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      now,
		stop:     make(chan struct{}),
	}
}

// SetPolicy configures the window for a namespace, e.g. SetPolicy("invitations", 20, time.Hour)
func (l *Limiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// Allow records an attempt and reports whether it fits in the window
func (l *Limiter) Allow(namespace, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok {
		return false
	}

	now := l.now()
	id := namespace + ":" + key
	recent := prune(l.attempts[id], now.Add(-policy.Window))
	if len(recent) >= policy.MaxAttempts {
		l.attempts[id] = recent
		return false
	}
	l.attempts[id] = append(recent, now)
	return true
}

// Reset forgets every attempt for the namespace and key
func (l *Limiter) Reset(namespace, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, namespace+":"+key)
}

// RetryAfter returns how long until the oldest attempt leaves the window, zero when not limited
func (l *Limiter) RetryAfter(namespace, key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok {
		return 0
	}
	now := l.now()
	recent := prune(l.attempts[namespace+":"+key], now.Add(-policy.Window))
	if len(recent) < policy.MaxAttempts || len(recent) == 0 {
		return 0
	}
	wait := recent[0].Add(policy.Window).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Stop terminates the janitor. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// prune keeps attempts newer than cutoff. Attempts are stored in insertion order.
func prune(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}

func (l *Limiter) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, attempts := range l.attempts {
		namespace, _, _ := strings.Cut(id, ":")
		policy, ok := l.policies[namespace]
		if !ok {
			delete(l.attempts, id)
			continue
		}
		if len(prune(attempts, now.Add(-policy.Window))) == 0 {
			delete(l.attempts, id)
		}
	}
}
