package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_LimitWithinWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewFixedWindow(20, time.Minute, WithClock(clock.Now))

	for i := 1; i <= 20; i++ {
		require.True(t, l.Allow("1.2.3.4"), "call %d should be allowed", i)
		clock.Advance(time.Second)
	}
	assert.False(t, l.Allow("1.2.3.4"), "21st call should be denied")
	assert.Equal(t, 0, l.Remaining("1.2.3.4"))
}

func TestAllow_NewWindowAfterReset(t *testing.T) {
	clock := newFakeClock()
	l := NewFixedWindow(20, time.Minute, WithClock(clock.Now))

	for i := 0; i < 20; i++ {
		l.Allow("c")
	}
	require.False(t, l.Allow("c"))

	// resetAt itself is still inside the window.
	clock.Advance(time.Minute)
	assert.False(t, l.Allow("c"))

	clock.Advance(time.Nanosecond)
	assert.True(t, l.Allow("c"))
	assert.Equal(t, 19, l.Remaining("c"), "fresh window starts at count 1")
	assert.Equal(t, clock.Now().Add(time.Minute), l.ResetAt("c"))
}

func TestAllow_DeniedCallDoesNotExtendWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewFixedWindow(1, time.Minute, WithClock(clock.Now))

	require.True(t, l.Allow("c"))
	reset := l.ResetAt("c")

	clock.Advance(30 * time.Second)
	require.False(t, l.Allow("c"))
	assert.Equal(t, reset, l.ResetAt("c"))
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := NewFixedWindow(2, time.Minute, WithClock(clock.Now))

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 1, l.Remaining("b"))
}

func TestAllow_BoundaryBurst(t *testing.T) {
	clock := newFakeClock()
	l := NewFixedWindow(3, time.Minute, WithClock(clock.Now))

	allowed := 0
	for i := 0; i < 3; i++ {
		if l.Allow("c") {
			allowed++
		}
	}
	clock.Advance(time.Minute + time.Millisecond)
	for i := 0; i < 3; i++ {
		if l.Allow("c") {
			allowed++
		}
	}
	assert.Equal(t, 6, allowed)
}

func TestAllow_Concurrent(t *testing.T) {
	l := NewFixedWindow(50, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestNewFixedWindow_Defaults(t *testing.T) {
	l := NewFixedWindow(0, 0)
	assert.Equal(t, DefaultLimit, l.Limit())
	assert.Equal(t, DefaultWindow, l.Window())
	assert.Equal(t, DefaultLimit, l.Remaining("nobody"))
	assert.True(t, l.ResetAt("nobody").IsZero())
}

func TestPrune(t *testing.T) {
	clock := newFakeClock()
	l := NewFixedWindow(5, time.Minute, WithClock(clock.Now))

	l.Allow("old")
	clock.Advance(45 * time.Second)
	l.Allow("fresh")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, l.Prune())
	assert.Equal(t, 1, l.size())
	assert.Equal(t, 4, l.Remaining("fresh"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	l := NewFixedWindow(1, 10*time.Millisecond)
	l.Allow("c")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.size() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
