package renderengine

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenTimerReachesTarget(t *testing.T) {
	e, clock := startedEngine()
	var values []float32
	done := false
	NewTweenTimer(e, "fade", 0, 10, 160*time.Millisecond, ease.Linear,
		func(v float32) { values = append(values, v) },
		func() { done = true })

	clock.Advance(400)
	if len(values) == 0 {
		t.Fatal("tween produced no samples")
	}
	last := values[len(values)-1]
	if last != 10 {
		t.Errorf("final value = %v, want 10", last)
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("values not monotonic: %v", values)
		}
	}
	if !done {
		t.Error("done callback did not fire")
	}
	if got := poolSize(e); got != 0 {
		t.Errorf("pool size = %d after completion, want 0", got)
	}
}

func TestTweenTimerPausesWithEngine(t *testing.T) {
	e, clock := startedEngine()
	samples := 0
	NewTweenTimer(e, "fade", 0, 1, time.Second, ease.Linear,
		func(float32) { samples++ }, nil)

	e.Run()
	clock.Advance(100)
	if samples == 0 {
		t.Fatal("tween not sampling while engine runs")
	}
	before := samples

	e.Pause()
	clock.Advance(500)
	if samples != before {
		t.Errorf("tween sampled %d times while paused", samples-before)
	}
}

func TestTweenTimerRestartRewinds(t *testing.T) {
	e, clock := startedEngine()
	var last float32
	timer := NewTweenTimer(e, "slide", 0, 100, 320*time.Millisecond, ease.Linear,
		func(v float32) { last = v }, nil)

	clock.Advance(160)
	mid := last
	if mid <= 0 || mid >= 100 {
		t.Fatalf("midpoint sample = %v, want strictly between 0 and 100", mid)
	}

	timer.Restart()
	clock.Advance(16)
	if last >= mid {
		t.Errorf("restart did not rewind: sample %v after restart, midpoint was %v", last, mid)
	}
}
