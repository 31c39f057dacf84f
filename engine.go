package renderengine

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// shutdownRetryFrames is how many frame budgets a shutdown issued against a
// paused engine waits before re-issuing itself, letting the in-flight frame
// settle after the forced resume.
const shutdownRetryFrames = 2

// Engine owns the lifecycle state machine, the frame scheduler, the identity
// registry, the timer pool, and the shutdown callback queue. Engines are
// explicit values; multiple independent engines can coexist in one process.
//
// All exported methods are safe for concurrent use: the engine serializes
// API calls and scheduler ticks on one mutex, preserving the invariant that
// no two engine operations ever execute concurrently.
type Engine struct {
	mu    sync.Mutex
	clock Clock
	log   *zap.Logger
	level zap.AtomicLevel
	debug bool

	// Lifecycle state
	started      bool
	running      bool
	shuttingDown bool
	stepPending  bool

	// Timebase, all in milliseconds
	upTime    int64 // wall time recorded at Startup
	downTime  int64 // wall time recorded at Pause; advanced by stepped frames
	worldTime int64 // simulated clock, advanced once per tick
	lastTime  int64 // worldTime of the previous tick
	liveTime  int64 // worldTime - upTime

	frameBudget   int64 // target milliseconds per frame (floor(1000/fps))
	fps           int
	drawTime      int64 // measured cost of the last traversal
	totalFrames   int64
	droppedFrames int64
	skipFrames    bool // catch-up pacing when over budget

	pending     Wakeup
	timers      map[string]Timer
	shutdownFns []func()
	registry    identityRegistry

	root      RootNode
	docTarget EventTarget
	probe     EnvironmentProbe
	loader    Loader
	metrics   MetricsHook
}

// NewEngine creates a dormant engine from the given options. The engine uses
// the system clock and a zap console built from opts.Logging; both can be
// replaced before Startup.
func NewEngine(opts Options) *Engine {
	log, level := NewConsole(opts.Logging)
	e := &Engine{
		clock:      systemClock{},
		log:        log,
		level:      level,
		skipFrames: opts.SkipFrames,
		timers:     make(map[string]Timer),
		docTarget:  NewBasicEventTarget(),
		probe:      DefaultEnvironmentProbe,
	}
	e.SetFPS(opts.FPS)
	if opts.Debug {
		e.SetDebugMode(true)
	}
	return e
}

// SetClock replaces the engine's clock. Panics if the engine has started;
// the timebase cannot change underneath a running scheduler.
func (e *Engine) SetClock(c Clock) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		panic("renderengine: SetClock on a started engine")
	}
	e.clock = c
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *zap.Logger, level zap.AtomicLevel) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = log
	e.level = level
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.log
}

// SetRoot installs the root traversal node invoked once per tick. The engine
// destroys the root during shutdown.
func (e *Engine) SetRoot(root RootNode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = root
}

// Root returns the installed root traversal node.
func (e *Engine) Root() RootNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// SetLoader installs the built-in resource loader invoked after Startup.
func (e *Engine) SetLoader(l Loader) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loader = l
}

// SetEnvironmentProbe replaces the capability check run by Startup.
func (e *Engine) SetEnvironmentProbe(p EnvironmentProbe) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.probe = p
}

// SetMetricsHook installs the hook invoked once per tick after frame-cost
// measurement.
func (e *Engine) SetMetricsHook(h MetricsHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = h
}

// SetDocumentTarget replaces the document-level event target used for
// global (owner-less) event bindings.
func (e *Engine) SetDocumentTarget(t EventTarget) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docTarget = t
}

// DocumentTarget returns the document-level event target.
func (e *Engine) DocumentTarget() EventTarget {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.docTarget
}

// DefaultEnvironmentProbe accepts the platforms the render backend supports.
func DefaultEnvironmentProbe() error {
	switch runtime.GOOS {
	case "linux", "windows", "darwin", "js", "android", "ios", "freebsd":
		return nil
	}
	return fmt.Errorf("renderengine: unsupported platform %s", runtime.GOOS)
}

// Startup performs the one-time environment check and arms the engine.
// Panics if the engine has already been started. If the environment probe
// fails, nothing starts and the error is returned for the caller to report.
func (e *Engine) Startup() error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		panic("renderengine: Startup on a started engine")
	}
	probe := e.probe
	e.mu.Unlock()

	if probe != nil {
		if err := probe(); err != nil {
			e.log.Warn("environment unsupported, engine not started", zap.Error(err))
			return fmt.Errorf("startup: %w", err)
		}
	}

	e.mu.Lock()
	e.started = true
	e.totalFrames = 0
	e.upTime = e.clock.Now()
	loader := e.loader
	e.mu.Unlock()

	e.log.Info("engine started", zap.Int("fps", e.GetFPS()))
	if loader != nil {
		if err := loader.LoadBuiltins(e); err != nil {
			e.log.Warn("builtin load failed", zap.Error(err))
		}
	}
	return nil
}

// Run starts (or resumes) the frame scheduler and restarts every pooled
// timer. No-op when already running or shutting down.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.running || e.shuttingDown {
		e.mu.Unlock()
		return
	}
	e.running = true
	// A step scheduled while paused may still be pending; it must not
	// consume the tick that starts the scheduler.
	e.stepPending = false
	// Seed the previous-tick time so the first delta is one frame budget.
	e.lastTime = e.clock.Now() - e.frameBudget
	timers := e.timerSnapshot()
	e.pending = e.clock.AfterFunc(0, e.tick)
	e.mu.Unlock()

	for _, t := range timers {
		t.Restart()
	}
	e.log.Info("engine running")
}

// Pause suspends the frame scheduler and pauses every pooled timer.
// No-op while shutting down.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.shuttingDown {
		e.mu.Unlock()
		return
	}
	e.cancelPending()
	e.stepPending = false
	e.running = false
	e.downTime = e.clock.Now()
	timers := e.timerSnapshot()
	e.mu.Unlock()

	for _, t := range timers {
		t.Pause()
	}
	e.log.Info("engine paused")
}

// Step advances exactly one frame while the engine is paused. Timers remain
// paused. No-op when the engine is running.
func (e *Engine) Step() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.stepPending = true
	e.pending = e.clock.AfterFunc(0, e.tick)
	e.mu.Unlock()
}

// OnShutdown registers fn to run exactly once during shutdown, in
// registration order, before pooled timers are cancelled.
func (e *Engine) OnShutdown(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdownFns = append(e.shutdownFns, fn)
}

// Shutdown tears the engine down: the scheduler is cancelled, shutdown
// callbacks drain FIFO, pooled timers are cancelled and the pool emptied,
// the root traversal is destroyed, and the live-object count is checked.
// Re-entrant calls while a shutdown is in progress are ignored. Calling
// Shutdown on a paused engine force-resumes it and re-issues the shutdown
// after a short delay so the in-flight frame can settle.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if e.shuttingDown {
		e.mu.Unlock()
		return
	}
	if !e.running && e.started {
		e.running = true
		e.clock.AfterFunc(time.Duration(shutdownRetryFrames*e.frameBudget)*time.Millisecond, e.Shutdown)
		e.mu.Unlock()
		return
	}
	e.shuttingDown = true
	e.started = false
	e.cancelPending()

	fns := e.shutdownFns
	e.shutdownFns = nil
	timers := e.timerSnapshot()
	e.timers = make(map[string]Timer)
	root := e.root
	e.root = nil
	e.mu.Unlock()

	e.log.Info("engine shutting down")
	for _, fn := range fns {
		fn()
	}
	for _, t := range timers {
		t.Cancel()
	}
	if root != nil {
		root.Destroy()
	}

	e.mu.Lock()
	if e.registry.live != 0 {
		e.log.Warn("live objects remain at shutdown", zap.Int64("count", e.registry.live))
		e.registry.live = 0
	}
	e.running = false
	e.stepPending = false
	e.upTime = 0
	e.downTime = 0
	e.worldTime = 0
	e.lastTime = 0
	e.liveTime = 0
	e.drawTime = 0
	e.totalFrames = 0
	e.droppedFrames = 0
	e.shuttingDown = false
	e.mu.Unlock()
	e.log.Info("engine stopped")
}

// cancelPending stops the scheduled tick, if any. Caller holds e.mu.
func (e *Engine) cancelPending() {
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
}

// --- State queries ---

// IsStarted reports whether Startup has completed.
func (e *Engine) IsStarted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

// IsRunning reports whether the frame scheduler is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// IsPaused reports whether the engine is started but not running.
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && !e.running
}

// IsShuttingDown reports whether a shutdown is in progress.
func (e *Engine) IsShuttingDown() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shuttingDown
}

// SetDebugMode toggles debug logging and destroyed-object use checks.
func (e *Engine) SetDebugMode(enabled bool) {
	e.mu.Lock()
	e.debug = enabled
	e.mu.Unlock()
	if enabled {
		e.level.SetLevel(zap.DebugLevel)
	} else {
		e.level.SetLevel(zap.InfoLevel)
	}
}

// GetDebugMode reports whether debug mode is enabled.
func (e *Engine) GetDebugMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debug
}

// SetFPS sets the target frame rate. Panics if fps is not positive.
func (e *Engine) SetFPS(fps int) {
	if fps <= 0 {
		panic("renderengine: fps must be positive")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fps = fps
	e.frameBudget = int64(1000 / fps)
	// The millisecond timebase cannot represent a budget below 1ms; rates
	// above 1000 fps would otherwise divide by zero in the drop accounting
	// and busy-loop the constant clock.
	if e.frameBudget < 1 {
		e.frameBudget = 1
	}
}

// GetFPS returns the target frame rate.
func (e *Engine) GetFPS() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fps
}

// GetFrameTime returns the frame budget in milliseconds: floor(1000/fps),
// never below 1.
func (e *Engine) GetFrameTime() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameBudget
}

// GetDrawTime returns the measured cost of the last traversal in
// milliseconds.
func (e *Engine) GetDrawTime() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drawTime
}

// GetActualFPS returns the frame rate the scheduler is achieving. The value
// cannot exceed the target rate and degrades as frames run over budget.
func (e *Engine) GetActualFPS() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	period := e.drawTime
	if period < e.frameBudget {
		period = e.frameBudget
	}
	if period <= 0 {
		return e.fps
	}
	return int(1000 / period)
}

// GetEngineLoad returns the ratio of measured frame cost to the frame
// budget. A value above 1 means the last frame ran over budget.
func (e *Engine) GetEngineLoad() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frameBudget == 0 {
		return 0
	}
	return float64(e.drawTime) / float64(e.frameBudget)
}

// WorldTime returns the simulated clock in milliseconds.
func (e *Engine) WorldTime() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.worldTime
}

// LiveTime returns the simulated time elapsed since Startup in milliseconds.
func (e *Engine) LiveTime() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.liveTime
}

// UpTime returns the wall-clock timestamp recorded at Startup.
func (e *Engine) UpTime() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.upTime
}

// TotalFrames returns the number of ticks executed since Startup.
func (e *Engine) TotalFrames() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalFrames
}

// DroppedFrames returns the cumulative count of frame budgets lost to
// over-budget ticks.
func (e *Engine) DroppedFrames() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.droppedFrames
}
