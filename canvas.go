package renderengine

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CanvasContext is a RenderContext backed by an ebiten image. The engine's
// host game hands one to the root traversal each frame.
type CanvasContext struct {
	target *ebiten.Image
}

// NewCanvasContext wraps target as a render context.
func NewCanvasContext(target *ebiten.Image) *CanvasContext {
	return &CanvasContext{target: target}
}

// Target returns the backing image.
func (c *CanvasContext) Target() *ebiten.Image {
	return c.target
}

// BlitSnapshot draws a captured snapshot at pos. Snapshots produced by
// other renderers are ignored.
func (c *CanvasContext) BlitSnapshot(s Snapshot, pos Vec2) {
	img, ok := s.(*ImageSnapshot)
	if !ok || !img.Ready() {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(pos.X, pos.Y)
	c.target.DrawImage(img.image, &op)
}

// ImageSnapshot is a Snapshot backed by an ebiten image.
type ImageSnapshot struct {
	image *ebiten.Image
	w, h  int
}

// Ready reports whether the backing image is still allocated.
func (s *ImageSnapshot) Ready() bool {
	return s.image != nil
}

// Size returns the snapshot dimensions in pixels.
func (s *ImageSnapshot) Size() (int, int) {
	return s.w, s.h
}

// Discard deallocates the backing image.
func (s *ImageSnapshot) Discard() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}

// SurfaceRenderer captures drawables into offscreen ebiten images.
type SurfaceRenderer struct{}

// Capture renders d into a fresh w-by-h offscreen image and returns it as a
// snapshot. Degenerate sizes are clamped to one pixel so the snapshot is
// always blittable.
func (SurfaceRenderer) Capture(d Drawable, w, h int) Snapshot {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	d.Draw(NewCanvasContext(img), 0, 0)
	return &ImageSnapshot{image: img, w: w, h: h}
}
