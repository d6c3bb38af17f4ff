package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultLimit  = 20
	DefaultWindow = time.Minute
)

type record struct {
	count   int
	resetAt time.Time
}

// FixedWindow counts calls per client id in fixed windows that start at the
// first call seen after the previous window expired. A burst of limit calls
// at the end of one window followed by limit more at the start of the next
// is allowed. State is process-local and lost on restart.
type FixedWindow struct {
	mu      sync.Mutex
	records map[string]*record
	limit   int
	window  time.Duration
	now     func() time.Time
}

type Option func(*FixedWindow)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *FixedWindow) {
		l.now = now
	}
}

func NewFixedWindow(limit int, window time.Duration, opts ...Option) *FixedWindow {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &FixedWindow{
		records: make(map[string]*record),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *FixedWindow) Limit() int {
	return l.limit
}

func (l *FixedWindow) Window() time.Duration {
	return l.window
}

// Allow reports whether clientID may make another call and counts it if so.
// A denied call does not touch the record.
func (l *FixedWindow) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[clientID]
	if !ok || now.After(rec.resetAt) {
		l.records[clientID] = &record{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	if rec.count >= l.limit {
		return false
	}

	rec.count++
	return true
}

// Remaining returns how many calls clientID has left in its current window.
func (l *FixedWindow) Remaining(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[clientID]
	if !ok || l.now().After(rec.resetAt) {
		return l.limit
	}
	remaining := l.limit - rec.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ResetAt returns the end of clientID's current window, or the zero time if
// it has none.
func (l *FixedWindow) ResetAt(clientID string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[clientID]
	if !ok || l.now().After(rec.resetAt) {
		return time.Time{}
	}
	return rec.resetAt
}

// Prune drops records whose window has expired and returns how many were
// removed. An expired record would be replaced on the next Allow anyway.
func (l *FixedWindow) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, rec := range l.records {
		if now.After(rec.resetAt) {
			delete(l.records, id)
			removed++
		}
	}
	return removed
}

// Run prunes once per window until ctx is done.
func (l *FixedWindow) Run(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune()
		}
	}
}

func (l *FixedWindow) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
