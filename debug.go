package renderengine

import (
	"fmt"

	"go.uber.org/zap"
)

// debugCheckDestroyed panics with a descriptive message when a destroyed
// object is used. Callers gate it on the engine's debug mode; in release
// mode the check is skipped entirely.
func debugCheckDestroyed(obj Object, op string) {
	if obj.Destroyed() {
		panic(fmt.Sprintf("renderengine debug: %s on destroyed object %q (id was %q)",
			op, obj.Name(), obj.ID()))
	}
}

// debugLoadThreshold is the engine load above which a debug-mode engine
// warns about sustained overruns.
const debugLoadThreshold = 1.5

// DebugMetricsHook returns a metrics hook that logs per-frame stats at
// debug level and warns when the engine load crosses the overrun
// threshold. Install it with SetMetricsHook.
func (e *Engine) DebugMetricsHook() MetricsHook {
	return func(stats FrameStats) {
		e.log.Debug("frame",
			zap.Int64("world_time", stats.WorldTime),
			zap.Int64("delta", stats.Delta),
			zap.Int64("draw_time", stats.DrawTime),
			zap.Int64("frames", stats.TotalFrames),
			zap.Int64("dropped", stats.DroppedFrames),
			zap.Float64("load", stats.Load),
		)
		if stats.Load > debugLoadThreshold {
			e.log.Warn("engine overloaded",
				zap.Float64("load", stats.Load),
				zap.Int64("dropped", stats.DroppedFrames))
		}
	}
}
