package renderengine

// RenderContext is the narrow drawing surface the engine hands to the root
// traversal and to cached-render hosts. Concrete contexts wrap a canvas
// or another backing surface.
type RenderContext interface {
	// BlitSnapshot draws a captured snapshot with its top-left corner at
	// pos. Snapshots that are not yet ready are skipped by callers.
	BlitSnapshot(s Snapshot, pos Vec2)
}

// Drawable is the capability interface for anything a billboard can wrap:
// a component that can report its bounds and render itself into a context.
type Drawable interface {
	Object
	// Bounds returns the drawable's axis-aligned bounding box in local
	// coordinates.
	Bounds() Rect
	// Draw renders the drawable into ctx. Times are in milliseconds.
	Draw(ctx RenderContext, worldTime, delta int64)
}

// Snapshot is a captured raster of a drawable, reusable across frames.
type Snapshot interface {
	// Ready reports whether the backing resource can be blitted. A frame
	// treats a not-ready snapshot as a normal skip, never an error.
	Ready() bool
	// Size returns the snapshot dimensions in pixels.
	Size() (w, h int)
	// Discard releases the backing resource. The snapshot is unusable
	// afterwards.
	Discard()
}

// OffscreenRenderer produces snapshots by rendering a drawable into an
// offscreen surface of the given size.
type OffscreenRenderer interface {
	Capture(d Drawable, w, h int) Snapshot
}
