package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter: fixed window in-process, sin dependencias. Se usa para acotar
// las refetches del JWKS remoto, que son estado local del proceso.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu   sync.Mutex
	hits map[string]*window
}

type window struct {
	start time.Time
	count int64
}

func NewMemoryLimiter(max int, win time.Duration) *MemoryLimiter {
	return &MemoryLimiter{Max: int64(max), Window: win, hits: make(map[string]*window)}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.hits[key]
	if !ok || now.Sub(w.start) >= l.Window {
		w = &window{start: now}
		l.hits[key] = w
	}
	w.count++

	remaining := l.Max - w.count
	if remaining < 0 {
		remaining = 0
	}
	res := Result{Allowed: w.count <= l.Max, Remaining: remaining}
	if !res.Allowed {
		res.RetryAfter = l.Window - now.Sub(w.start)
	}
	return res, nil
}
