package renderengine

import (
	"math"
	"time"
)

// Clock abstracts time measurement and the deferred-wakeup primitive so the
// scheduler and timers can be driven deterministically in tests.
type Clock interface {
	// Now returns the current time in milliseconds.
	Now() int64
	// AfterFunc arranges for fn to run once after d and returns a handle
	// that can cancel the call before it fires.
	AfterFunc(d time.Duration, fn func()) Wakeup
}

// Wakeup is a pending deferred call. Cancel reports whether the call was
// stopped before firing.
type Wakeup interface {
	Cancel() bool
}

// systemClock is the default Clock backed by the runtime timer system.
type systemClock struct{}

func (systemClock) Now() int64 {
	return time.Now().UnixMilli()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Wakeup {
	return systemWakeup{time.AfterFunc(d, fn)}
}

type systemWakeup struct {
	t *time.Timer
}

func (w systemWakeup) Cancel() bool {
	return w.t.Stop()
}

// minCatchUpDelay is the shortest delay the catch-up policy schedules when a
// frame has run over budget.
const minCatchUpDelay = 1 // ms

// tick executes one frame: it advances the world clock, runs the root
// traversal, measures the frame cost, updates the frame counters, and
// schedules the next tick. It runs on the clock's wakeup goroutine; the
// engine mutex is released around the traversal so managed objects can be
// created and destroyed while it runs.
func (e *Engine) tick() {
	e.mu.Lock()
	if e.shuttingDown || (!e.running && !e.stepPending) {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	stepping := e.stepPending

	// While single-stepping, the world clock is pinned to the recorded
	// pause timestamp so stepped frames stay chronologically continuous
	// with real time once the engine resumes. Frame cost is always
	// measured against the wall clock.
	start := e.clock.Now()
	worldTime := start
	if stepping {
		worldTime = e.downTime
	}
	delta := worldTime - e.lastTime
	e.worldTime = worldTime
	root := e.root
	e.mu.Unlock()

	if root != nil {
		root.Update(nil, worldTime, delta)
	}

	e.mu.Lock()
	// The traversal may have shut the engine down (a quit reaction is a
	// normal cooperative move); the reset state must not be written over.
	if e.shuttingDown || !e.started {
		e.mu.Unlock()
		return
	}
	cost := e.clock.Now() - start
	e.drawTime = cost
	if stepping {
		// Fold the frame cost into the pause timestamp so the next
		// real-time resume does not perceive a time jump.
		e.downTime += cost
	}
	e.liveTime = worldTime - e.upTime
	e.lastTime = worldTime
	e.totalFrames++

	remaining := e.frameBudget - cost
	if remaining < 0 {
		e.droppedFrames += int64(math.Round(float64(-remaining) / float64(e.frameBudget)))
	}

	var next int64
	if e.skipFrames {
		// Catch-up pacing: compensate for the frame cost, and fire again
		// as soon as possible after an overrun.
		if remaining > 0 {
			next = remaining
		} else {
			next = minCatchUpDelay
		}
	} else {
		// Constant clock: strictly periodic regardless of overrun.
		next = e.frameBudget
	}

	stats := FrameStats{
		WorldTime:     worldTime,
		Delta:         delta,
		DrawTime:      cost,
		LiveTime:      e.liveTime,
		TotalFrames:   e.totalFrames,
		DroppedFrames: e.droppedFrames,
		Load:          float64(cost) / float64(e.frameBudget),
	}
	hook := e.metrics

	if stepping {
		e.stepPending = false
	} else if e.running && !e.shuttingDown {
		e.pending = e.clock.AfterFunc(time.Duration(next)*time.Millisecond, e.tick)
	}
	e.mu.Unlock()

	if hook != nil {
		hook(stats)
	}
}

// SetSkipFrames selects the pacing policy: catch-up when enabled, constant
// clock when disabled.
func (e *Engine) SetSkipFrames(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.skipFrames = enabled
}

// SkipFrames reports the active pacing policy.
func (e *Engine) SkipFrames() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skipFrames
}
