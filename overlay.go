package renderengine

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefreshMs is how often the overlay text is re-rendered.
const overlayRefreshMs = 500

// MetricsOverlay is a ready-made consumer for the engine's metrics hook: a
// small offscreen readout of target/actual FPS, engine load, and dropped
// frames, refreshed about twice a second. Draw its Image onto the screen
// wherever the host game wants it.
type MetricsOverlay struct {
	mu         sync.Mutex
	engine     *Engine
	img        *ebiten.Image
	lastUpdate int64
}

// NewMetricsOverlay creates an overlay and installs its hook on the engine.
func NewMetricsOverlay(e *Engine) *MetricsOverlay {
	// 120x48 fits three lines of debug text.
	o := &MetricsOverlay{
		engine: e,
		img:    ebiten.NewImage(120, 48),
	}
	e.SetMetricsHook(o.Hook)
	return o
}

// Image returns the overlay's backing image.
func (o *MetricsOverlay) Image() *ebiten.Image {
	return o.img
}

// Hook consumes one frame's stats, redrawing the readout when the refresh
// interval has elapsed.
func (o *MetricsOverlay) Hook(stats FrameStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if stats.WorldTime-o.lastUpdate < overlayRefreshMs {
		return
	}
	o.lastUpdate = stats.WorldTime

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf(
		"FPS: %d/%d\nLoad: %.2f\nDropped: %d",
		o.engine.GetActualFPS(), o.engine.GetFPS(), stats.Load, stats.DroppedFrames))
}
