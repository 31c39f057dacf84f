package renderengine

import (
	"sync"
	"time"
)

// Timer is a pause/resume/cancel-capable timer handle. Pooled timers are
// kept in lockstep with the engine's run state: Pause suspends every pooled
// timer, Run restarts them, and Shutdown cancels them and empties the pool.
type Timer interface {
	// Restart arms the timer for its full interval, discarding any elapsed
	// portion.
	Restart()
	// Pause disarms the timer without removing it from the pool.
	Pause()
	// Cancel disarms the timer permanently and removes it from the pool.
	Cancel()
}

// AddTimer registers a timer under name. A timer already registered under
// the same name is replaced.
func (e *Engine) AddTimer(name string, t Timer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timers[name] = t
}

// RemoveTimer removes the named timer from the pool without cancelling it.
func (e *Engine) RemoveTimer(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.timers, name)
}

// timerSnapshot copies the pool so handles can be invoked without holding
// the engine mutex. Caller holds e.mu.
func (e *Engine) timerSnapshot() []Timer {
	out := make([]Timer, 0, len(e.timers))
	for _, t := range e.timers {
		out = append(out, t)
	}
	return out
}

// --- Concrete timers ---

// baseTimer carries the state shared by every concrete timer: the clock, the
// interval, the pending wakeup, and the paused/cancelled flags. Each timer
// guards its own state with a small mutex because wakeups fire on the
// clock's goroutine.
type baseTimer struct {
	mu        sync.Mutex
	engine    *Engine
	clock     Clock
	name      string
	interval  time.Duration
	pending   Wakeup
	cancelled bool
}

func newBaseTimer(e *Engine, name string, interval time.Duration) baseTimer {
	return baseTimer{engine: e, clock: e.clock, name: name, interval: interval}
}

// arm schedules fn after the timer's interval. Caller holds t.mu.
func (t *baseTimer) arm(fn func()) {
	t.disarm()
	t.pending = t.clock.AfterFunc(t.interval, fn)
}

// disarm cancels the pending wakeup, if any. Caller holds t.mu.
func (t *baseTimer) disarm() {
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
}

// Pause disarms the timer. A later Restart re-arms the full interval.
func (t *baseTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarm()
}

// cancel marks the timer dead and removes it from the engine pool.
func (t *baseTimer) cancel() {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.cancelled = true
	t.disarm()
	t.mu.Unlock()
	t.engine.RemoveTimer(t.name)
}

// Timeout fires its callback once, interval after the most recent Restart.
type Timeout struct {
	baseTimer
	fn func()
}

// NewTimeout creates, pools, and arms a one-shot timer.
func NewTimeout(e *Engine, name string, interval time.Duration, fn func()) *Timeout {
	t := &Timeout{baseTimer: newBaseTimer(e, name, interval), fn: fn}
	e.AddTimer(name, t)
	t.Restart()
	return t
}

// Restart re-arms the full interval.
func (t *Timeout) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.arm(t.fire)
}

func (t *Timeout) fire() {
	t.mu.Lock()
	t.pending = nil
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// Cancel disarms the timer and removes it from the pool.
func (t *Timeout) Cancel() {
	t.cancel()
}

// OneShotTimeout is a Timeout that cancels itself after firing, leaving no
// pool entry behind.
type OneShotTimeout struct {
	Timeout
}

// NewOneShotTimeout creates, pools, and arms a self-cancelling timeout.
func NewOneShotTimeout(e *Engine, name string, interval time.Duration, fn func()) *OneShotTimeout {
	t := &OneShotTimeout{}
	t.baseTimer = newBaseTimer(e, name, interval)
	inner := fn
	t.fn = func() {
		inner()
		t.cancel()
	}
	e.AddTimer(name, t)
	t.Restart()
	return t
}

// Interval fires its callback repeatedly, once per interval.
type Interval struct {
	baseTimer
	fn func()
}

// NewInterval creates, pools, and arms a repeating timer.
func NewInterval(e *Engine, name string, interval time.Duration, fn func()) *Interval {
	t := &Interval{baseTimer: newBaseTimer(e, name, interval), fn: fn}
	e.AddTimer(name, t)
	t.Restart()
	return t
}

// Restart re-arms the full interval.
func (t *Interval) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.arm(t.fire)
}

func (t *Interval) fire() {
	t.mu.Lock()
	t.pending = nil
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	fn := t.fn
	t.arm(t.fire)
	t.mu.Unlock()
	fn()
}

// Cancel disarms the timer and removes it from the pool.
func (t *Interval) Cancel() {
	t.cancel()
}

// MultiTimeout fires its callback a fixed number of times, passing the
// zero-based repetition index, then cancels itself.
type MultiTimeout struct {
	baseTimer
	fn    func(rep int)
	reps  int
	count int
}

// NewMultiTimeout creates, pools, and arms a timer that fires reps times.
func NewMultiTimeout(e *Engine, name string, reps int, interval time.Duration, fn func(rep int)) *MultiTimeout {
	t := &MultiTimeout{baseTimer: newBaseTimer(e, name, interval), fn: fn, reps: reps}
	e.AddTimer(name, t)
	t.Restart()
	return t
}

// Restart resets the repetition count and re-arms the full interval.
func (t *MultiTimeout) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.count = 0
	t.arm(t.fire)
}

func (t *MultiTimeout) fire() {
	t.mu.Lock()
	t.pending = nil
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	rep := t.count
	t.count++
	fn := t.fn
	last := t.count >= t.reps
	if !last {
		t.arm(t.fire)
	}
	t.mu.Unlock()
	fn(rep)
	if last {
		t.cancel()
	}
}

// Cancel disarms the timer and removes it from the pool.
func (t *MultiTimeout) Cancel() {
	t.cancel()
}

// OneShotTrigger runs for a total interval, invoking a trigger callback at a
// fixed soft cadence along the way and a final callback at the end, then
// cancels itself.
type OneShotTrigger struct {
	baseTimer
	triggerEvery time.Duration
	onTrigger    func(elapsed time.Duration)
	onDone       func()
	elapsed      time.Duration
	lastStep     time.Duration
}

// NewOneShotTrigger creates, pools, and arms a trigger timer. total is the
// full lifetime; onTrigger fires every triggerEvery until total has elapsed,
// then onDone fires once.
func NewOneShotTrigger(e *Engine, name string, total, triggerEvery time.Duration, onTrigger func(elapsed time.Duration), onDone func()) *OneShotTrigger {
	t := &OneShotTrigger{
		baseTimer:    newBaseTimer(e, name, total),
		triggerEvery: triggerEvery,
		onTrigger:    onTrigger,
		onDone:       onDone,
	}
	e.AddTimer(name, t)
	t.Restart()
	return t
}

// Restart resets the elapsed lifetime and re-arms the trigger cadence.
func (t *OneShotTrigger) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.elapsed = 0
	t.armTrigger()
}

// armTrigger schedules the next trigger step. Caller holds t.mu.
func (t *OneShotTrigger) armTrigger() {
	t.disarm()
	step := t.triggerEvery
	if rem := t.interval - t.elapsed; rem < step {
		step = rem
	}
	t.lastStep = step
	t.pending = t.clock.AfterFunc(step, t.fire)
}

func (t *OneShotTrigger) fire() {
	t.mu.Lock()
	t.pending = nil
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.elapsed += t.lastStep
	done := t.elapsed >= t.interval
	trigger := t.onTrigger
	elapsed := t.elapsed
	if !done {
		t.armTrigger()
	}
	onDone := t.onDone
	t.mu.Unlock()

	if trigger != nil {
		trigger(elapsed)
	}
	if done {
		if onDone != nil {
			onDone()
		}
		t.cancel()
	}
}

// Cancel disarms the timer and removes it from the pool.
func (t *OneShotTrigger) Cancel() {
	t.cancel()
}
