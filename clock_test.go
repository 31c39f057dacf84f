package renderengine

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// manualClock is a deterministic Clock for tests. Advance moves time
// forward and fires due wakeups in due order; Sleep moves time forward
// without firing anything, simulating work done inside a frame.
type manualClock struct {
	mu      sync.Mutex
	now     int64
	wakeups []*manualWakeup
}

type manualWakeup struct {
	clock     *manualClock
	due       int64
	fn        func()
	cancelled bool
	fired     bool
}

func newManualClock(start int64) *manualClock {
	return &manualClock{now: start}
}

func (c *manualClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) Wakeup {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := &manualWakeup{clock: c, due: c.now + d.Milliseconds(), fn: fn}
	c.wakeups = append(c.wakeups, w)
	return w
}

func (w *manualWakeup) Cancel() bool {
	w.clock.mu.Lock()
	defer w.clock.mu.Unlock()
	if w.fired || w.cancelled {
		return false
	}
	w.cancelled = true
	return true
}

// Sleep advances the clock without firing wakeups. Call from inside a root
// traversal to simulate frame cost.
func (c *manualClock) Sleep(ms int64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// Advance moves the clock forward by ms, firing every due wakeup in order.
// Wakeups scheduled while firing are honored within the same advance.
func (c *manualClock) Advance(ms int64) {
	c.mu.Lock()
	target := c.now + ms
	for {
		var next *manualWakeup
		for _, w := range c.wakeups {
			if w.cancelled || w.fired || w.due > target {
				continue
			}
			if next == nil || w.due < next.due {
				next = w
			}
		}
		if next == nil {
			break
		}
		if next.due > c.now {
			c.now = next.due
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
		// Firing may have slept the clock past the target.
		if c.now > target {
			target = c.now
		}
	}
	c.now = target
	c.mu.Unlock()
}

// newTestEngine builds a silent engine on a manual clock starting at a
// non-zero epoch.
func newTestEngine() (*Engine, *manualClock) {
	e := NewEngine(DefaultOptions())
	e.SetLogger(zap.NewNop(), zap.NewAtomicLevel())
	clock := newManualClock(1_000_000)
	e.SetClock(clock)
	return e, clock
}

// startedEngine additionally runs Startup.
func startedEngine() (*Engine, *manualClock) {
	e, clock := newTestEngine()
	if err := e.Startup(); err != nil {
		panic(err)
	}
	return e, clock
}
