package renderengine

// billboardMode is the render-cache state of a Billboard.
type billboardMode uint8

const (
	// billboardRedraw regenerates the offscreen snapshot on the next draw.
	billboardRedraw billboardMode = iota
	// billboardNormal blits the cached snapshot.
	billboardNormal
)

// Billboard caches the rendered output of an expensive, infrequently
// changing drawable. The first draw pass renders the wrapped drawable into
// an offscreen snapshot; subsequent passes blit the snapshot at the host's
// origin until Regenerate invalidates it. The cache never expires on its
// own.
type Billboard struct {
	BaseObject
	drawable Drawable
	renderer OffscreenRenderer
	mode     billboardMode
	snapshot Snapshot
	bounds   Rect // cached host bounding box; zero when invalid

	// Origin is the position the snapshot is blitted at.
	Origin Vec2
}

// NewBillboard wraps drawable in a render cache using renderer for offscreen
// capture, and registers the billboard with the engine. The new billboard
// starts in the redraw state.
func NewBillboard(e *Engine, drawable Drawable, renderer OffscreenRenderer) *Billboard {
	if drawable == nil {
		panic("renderengine: billboard requires a drawable")
	}
	if renderer == nil {
		panic("renderengine: billboard requires an offscreen renderer")
	}
	b := &Billboard{
		BaseObject: NewBaseObject(e, "Billboard"),
		drawable:   drawable,
		renderer:   renderer,
		mode:       billboardRedraw,
	}
	e.Create(b)
	return b
}

// Drawable returns the wrapped drawable component.
func (b *Billboard) Drawable() Drawable {
	return b.drawable
}

// NeedsRedraw reports whether the next draw pass will regenerate the
// snapshot.
func (b *Billboard) NeedsRedraw() bool {
	return b.mode == billboardRedraw
}

// CachedBounds returns the bounding box captured with the current snapshot.
// The zero Rect means no bounds are cached.
func (b *Billboard) CachedBounds() Rect {
	return b.bounds
}

// Draw runs one pass of the cache state machine. In the redraw state it
// captures the wrapped drawable into a fresh snapshot sized to the host's
// bounding box and switches to the cached state. In the cached state it
// blits the snapshot at Origin; a snapshot whose backing resource is not
// yet ready is skipped for this frame.
func (b *Billboard) Draw(ctx RenderContext, worldTime, delta int64) {
	if b.engine != nil && b.engine.GetDebugMode() {
		debugCheckDestroyed(b, "Draw")
	}
	switch b.mode {
	case billboardRedraw:
		bounds := b.drawable.Bounds()
		if b.snapshot != nil {
			b.snapshot.Discard()
		}
		b.snapshot = b.renderer.Capture(b.drawable, int(bounds.Width), int(bounds.Height))
		b.bounds = bounds
		b.mode = billboardNormal
	case billboardNormal:
		if b.snapshot == nil || !b.snapshot.Ready() {
			return
		}
		ctx.BlitSnapshot(b.snapshot, b.Origin)
	}
}

// Regenerate invalidates the cache: the next draw pass re-renders the
// wrapped drawable. The cached bounding box is dropped and the snapshot
// discarded. Call after the drawable's content changes.
func (b *Billboard) Regenerate() {
	b.mode = billboardRedraw
	b.bounds = Rect{}
	if b.snapshot != nil {
		b.snapshot.Discard()
		b.snapshot = nil
	}
}

// Destroy releases the snapshot and cascades to the wrapped drawable.
func (b *Billboard) Destroy() {
	if b.Destroyed() {
		return
	}
	if b.snapshot != nil {
		b.snapshot.Discard()
		b.snapshot = nil
	}
	if b.drawable != nil {
		b.drawable.Destroy()
		b.drawable = nil
	}
	b.BaseObject.Destroy()
}
