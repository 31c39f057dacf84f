package renderengine

// Object is implemented by every engine-managed entity. Creation and
// destruction are tracked by the engine's identity registry so leaks can be
// reported at shutdown.
type Object interface {
	// Name returns the object's type name, used as the id prefix.
	Name() string
	// ID returns the unique id assigned at registration, or "" if the
	// object was never registered (for example, created during shutdown).
	ID() string
	// SetID is called exactly once by Engine.Create.
	SetID(id string)
	// Destroy releases the object. Must be safe to call more than once.
	Destroy()
	// Destroyed reports whether Destroy has run.
	Destroyed() bool
}

// BaseObject provides identity and destruction bookkeeping. Embed it in a
// concrete object type and register the outer value with Engine.Create.
// Outer Destroy methods release their own resources first, then call the
// embedded Destroy.
type BaseObject struct {
	engine    *Engine
	name      string
	id        string
	destroyed bool
}

// NewBaseObject prepares an unregistered base for a managed object named
// name. The caller registers the outer object via Engine.Create.
func NewBaseObject(e *Engine, name string) BaseObject {
	return BaseObject{engine: e, name: name}
}

// Name returns the object's type name.
func (b *BaseObject) Name() string {
	return b.name
}

// ID returns the assigned id, or "" when registration was refused.
func (b *BaseObject) ID() string {
	return b.id
}

// SetID records the id assigned by the identity registry.
func (b *BaseObject) SetID(id string) {
	b.id = id
}

// Engine returns the engine this object belongs to.
func (b *BaseObject) Engine() *Engine {
	return b.engine
}

// Destroy releases the object's registry slot. Calling it again is a no-op,
// so a double destroy never corrupts the live-object count. Objects whose
// registration was refused carry an empty id and skip the count entirely.
func (b *BaseObject) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.engine != nil && b.id != "" {
		b.engine.release(b.id)
	}
}

// Destroyed reports whether Destroy has run.
func (b *BaseObject) Destroyed() bool {
	return b.destroyed
}
