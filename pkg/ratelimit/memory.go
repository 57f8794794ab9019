package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process fixed-window limiter.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// NewMemory allows limit requests per window for each key. Non-positive
// arguments use the defaults.
func NewMemory(limit int, per time.Duration) *Memory {
	if limit <= 0 {
		limit = DefaultRequests
	}
	if per <= 0 {
		per = DefaultWindow
	}
	return &Memory{limit: limit, window: per, now: time.Now, windows: make(map[string]*window)}
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.window)}
		m.windows[key] = w
	}
	w.count++
	return decide(w.count, m.limit, w.resetAt, now), nil
}

// Sweep drops windows that have ended and returns how many were dropped.
func (m *Memory) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep once per window until ctx is done.
func (m *Memory) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

var _ Limiter = (*Memory)(nil)
