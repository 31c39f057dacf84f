package renderengine

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenResolution is the cadence at which a TweenTimer samples its tween.
const tweenResolution = 16 * time.Millisecond

// TweenTimer eases a float value from a start to an end over a fixed
// duration, delivering each sample to an update callback. It is a pooled
// Timer, so it pauses and resumes with the engine. Restart rewinds the
// tween to its start value.
type TweenTimer struct {
	baseTimer
	tween  *gween.Tween
	update func(value float32)
	done   func()
}

// NewTweenTimer creates, pools, and arms an eased value timer. fn selects
// the easing curve; update receives each sampled value on the clock's
// goroutine; done, if non-nil, fires once after the final sample.
func NewTweenTimer(e *Engine, name string, from, to float32, duration time.Duration, fn ease.TweenFunc, update func(value float32), done func()) *TweenTimer {
	t := &TweenTimer{
		baseTimer: newBaseTimer(e, name, tweenResolution),
		tween:     gween.New(from, to, float32(duration.Seconds()), fn),
		update:    update,
		done:      done,
	}
	e.AddTimer(name, t)
	t.Restart()
	return t
}

// Restart rewinds the tween and re-arms the sampling cadence.
func (t *TweenTimer) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.tween.Reset()
	t.arm(t.fire)
}

func (t *TweenTimer) fire() {
	t.mu.Lock()
	t.pending = nil
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	value, finished := t.tween.Update(float32(t.interval.Seconds()))
	update := t.update
	done := t.done
	if !finished {
		t.arm(t.fire)
	}
	t.mu.Unlock()

	if update != nil {
		update(value)
	}
	if finished {
		if done != nil {
			done()
		}
		t.cancel()
	}
}

// Cancel disarms the timer and removes it from the pool.
func (t *TweenTimer) Cancel() {
	t.cancel()
}
