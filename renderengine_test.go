package renderengine

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, Width: 100, Height: 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{X: 50, Y: 50, Width: 100, Height: 100}, true},
		{"adjacent right", Rect{X: 110, Y: 10, Width: 50, Height: 50}, true},
		{"disjoint right", Rect{X: 111, Y: 10, Width: 50, Height: 50}, false},
		{"containing", Rect{X: 0, Y: 0, Width: 200, Height: 200}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestVec2Add(t *testing.T) {
	got := Vec2{X: 3, Y: -1}.Add(Vec2{X: 2, Y: 5})
	if got != (Vec2{X: 5, Y: 4}) {
		t.Errorf("Add = %+v, want {5 4}", got)
	}
}

func TestRectOriginAndTranslate(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if got := r.Origin(); got != (Vec2{X: 10, Y: 20}) {
		t.Errorf("Origin = %+v, want {10 20}", got)
	}
	moved := r.Translate(Vec2{X: 5, Y: -20})
	if moved != (Rect{X: 15, Y: 0, Width: 100, Height: 50}) {
		t.Errorf("Translate = %+v", moved)
	}
}

func TestRectIsZero(t *testing.T) {
	if !(Rect{}).IsZero() {
		t.Error("zero Rect not reported zero")
	}
	if (Rect{Width: 1}).IsZero() {
		t.Error("non-zero Rect reported zero")
	}
}

func TestNewConsoleLevels(t *testing.T) {
	log, level := NewConsole(LoggingOptions{Level: "warn", Format: "json"})
	if log == nil {
		t.Fatal("nil logger")
	}
	if level.Level() != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", level.Level())
	}

	// Unknown level names fall back to info.
	_, level = NewConsole(LoggingOptions{Level: "chatty", Format: "console"})
	if level.Level() != zapcore.InfoLevel {
		t.Errorf("fallback level = %v, want info", level.Level())
	}
}

func TestSetDebugModeFlipsConsoleLevel(t *testing.T) {
	e, _ := newTestEngine()
	e.SetDebugMode(true)
	if !e.GetDebugMode() {
		t.Error("debug mode not enabled")
	}
	e.SetDebugMode(false)
	if e.GetDebugMode() {
		t.Error("debug mode not disabled")
	}
}
