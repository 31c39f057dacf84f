package renderengine

// Version is the engine version, used by the options loader to select
// version-matched overrides.
const Version = "2.1.0"

// Vec2 is a position or offset in canvas coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Rect is an axis-aligned bounding box. X and Y locate the top-left corner;
// Y grows downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Origin returns the rectangle's top-left corner.
func (r Rect) Origin() Vec2 {
	return Vec2{r.X, r.Y}
}

// Translate returns r shifted by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{r.X + v.X, r.Y + v.Y, r.Width, r.Height}
}

// Contains reports whether the point (x, y) falls within the rectangle.
// All four edges count as part of it.
func (r Rect) Contains(x, y float64) bool {
	if x < r.X || y < r.Y {
		return false
	}
	return x <= r.X+r.Width && y <= r.Y+r.Height
}

// Intersects reports whether r and other share any point. A bare touching
// edge counts as an intersection.
func (r Rect) Intersects(other Rect) bool {
	if r.X > other.X+other.Width || other.X > r.X+r.Width {
		return false
	}
	return r.Y <= other.Y+other.Height && other.Y <= r.Y+r.Height
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// RootNode is the externally supplied root of the scene traversal. The frame
// scheduler calls Update once per tick; the engine destroys the root during
// shutdown, which must cascade destruction to every managed object it holds.
type RootNode interface {
	// Update advances and renders the node's subtree. parent is nil when the
	// engine itself drives the traversal. Times are in milliseconds.
	Update(parent RenderContext, worldTime, delta int64)
	Destroy()
}

// Loader is the collaborator that loads built-in support resources once the
// engine has started. Failures are logged and do not abort startup.
type Loader interface {
	LoadBuiltins(e *Engine) error
}

// EnvironmentProbe checks whether the execution environment can host the
// engine. A non-nil error aborts Startup before any state changes take hold.
type EnvironmentProbe func() error

// FrameStats is the per-tick measurement passed to the metrics hook.
type FrameStats struct {
	WorldTime     int64 // simulated clock at the start of the tick (ms)
	Delta         int64 // elapsed simulated time since the previous tick (ms)
	DrawTime      int64 // measured cost of the traversal (ms)
	LiveTime      int64 // time since startup as seen by the world clock (ms)
	TotalFrames   int64
	DroppedFrames int64
	Load          float64 // DrawTime / frame budget; >1 means overrun
}

// MetricsHook is invoked once per tick after frame-cost measurement.
// The hook runs on the scheduler's goroutine and should return quickly.
type MetricsHook func(FrameStats)
