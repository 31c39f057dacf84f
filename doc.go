// Package renderengine is the runtime core of a client-side interactive
// rendering engine: it advances simulated time frame by frame, tracks the
// lifecycle of every managed object, keeps pooled timers in lockstep with
// the engine's run state, and caches expensive render output.
//
// # Engine lifecycle
//
// An [Engine] is an explicit value; several can coexist in one process.
// The lifecycle is Stopped → Started → Running ⇄ Paused → ShuttingDown →
// Stopped:
//
//	e := renderengine.NewEngine(renderengine.DefaultOptions())
//	if err := e.Startup(); err != nil {
//		// environment unsupported; nothing started
//	}
//	e.SetRoot(root) // external scene traversal
//	e.Run()
//	...
//	e.Shutdown()
//
// [Engine.Pause] suspends the frame scheduler and every pooled timer;
// [Engine.Step] advances exactly one frame while paused. [Engine.Shutdown]
// drains shutdown callbacks in FIFO order, cancels pooled timers, destroys
// the root traversal, and reports any leaked managed objects.
//
// # Frame scheduling
//
// The scheduler is cooperative and single-threaded: each tick computes the
// world time and delta, invokes the root traversal, measures the frame
// cost, and schedules the next tick through a cancellable deferred wakeup.
// With catch-up pacing ([Options].SkipFrames) an over-budget frame fires
// the next tick as soon as possible and counts dropped frames; with the
// constant clock the cadence stays strictly periodic. The frame budget is
// advisory: overruns never abort a frame.
//
// # Managed objects
//
// Types embedding [BaseObject] and registered with [Engine.Create] receive
// ids of the form name+sequence and are counted until destroyed, enabling
// the leak check at shutdown. [ElementObject] adds per-owner event
// bookkeeping so no external listener survives its object.
//
// # Render caching
//
// A [Billboard] wraps any [Drawable] and amortizes its render cost: the
// first draw pass captures an offscreen snapshot, later passes blit the
// snapshot until [Billboard.Regenerate] invalidates it. The ebiten-backed
// [CanvasContext], [ImageSnapshot], and [SurfaceRenderer] provide the
// concrete surfaces; tests substitute in-memory fakes.
package renderengine
