package renderengine

// EventHandler handles one dispatched event. The payload is whatever the
// event target delivers for the event type.
type EventHandler func(data any)

// documentOwner keys owner-less bindings on the document-level target.
const documentOwner = "document"

// EventTarget is an attachable UI surface. Handlers are bound per
// (event type, owner) pair, so distinct owners can listen to the same
// event type on one surface without shadowing each other; re-attaching
// under the same pair replaces the previous handler.
type EventTarget interface {
	Attach(eventType, owner string, h EventHandler)
	Detach(eventType, owner string)
}

// BasicEventTarget is a map-backed EventTarget. It serves as the default
// document-level target for global bindings and as a plain element for
// objects without a platform-specific surface.
type BasicEventTarget struct {
	handlers map[string]map[string]EventHandler // event type -> owner -> handler
}

// NewBasicEventTarget creates an empty event target.
func NewBasicEventTarget() *BasicEventTarget {
	return &BasicEventTarget{handlers: make(map[string]map[string]EventHandler)}
}

// Attach binds h for owner under eventType, replacing the handler the same
// owner previously attached for that type.
func (t *BasicEventTarget) Attach(eventType, owner string, h EventHandler) {
	m := t.handlers[eventType]
	if m == nil {
		m = make(map[string]EventHandler)
		t.handlers[eventType] = m
	}
	m[owner] = h
}

// Detach removes the handler owner attached for eventType, if any. Other
// owners' handlers for the same type are untouched.
func (t *BasicEventTarget) Detach(eventType, owner string) {
	m := t.handlers[eventType]
	delete(m, owner)
	if len(m) == 0 {
		delete(t.handlers, eventType)
	}
}

// Trigger dispatches an event to every handler bound to eventType. Reports
// whether any handler was attached.
func (t *BasicEventTarget) Trigger(eventType string, data any) bool {
	m := t.handlers[eventType]
	for _, h := range m {
		h(data)
	}
	return len(m) > 0
}

// HandlerCount returns the number of attached handlers across all types.
func (t *BasicEventTarget) HandlerCount() int {
	n := 0
	for _, m := range t.handlers {
		n += len(m)
	}
	return n
}

// eventBinding records where and under which owner a handler was attached
// so destruction can detach exactly that handler.
type eventBinding struct {
	target    EventTarget
	eventType string
	owner     string
}

// ElementObject is a managed object with an attachable UI surface. It keeps
// per-owner event bookkeeping so every binding added through it can be
// released when the object is destroyed.
type ElementObject struct {
	BaseObject
	element  EventTarget
	bindings map[string]eventBinding
}

// NewElementObject prepares an element-backed object named name. element may
// be nil for objects that only hold global bindings.
func NewElementObject(e *Engine, name string, element EventTarget) ElementObject {
	return ElementObject{
		BaseObject: NewBaseObject(e, name),
		element:    element,
		bindings:   make(map[string]eventBinding),
	}
}

// Element returns the attached UI surface, or nil.
func (o *ElementObject) Element() EventTarget {
	return o.element
}

// SetElement attaches a UI surface to the object.
func (o *ElementObject) SetElement(element EventTarget) {
	o.element = element
}

// AddEvent binds handler to eventType. With a nil owner the binding is
// global: it attaches to the engine's document-level target, one binding
// per event type, keyed "document,<type>". With a non-nil owner the object
// must have an attached element; the binding is attached under the owner's
// name and keyed "<owner name>,<type>" so the same owner can remove it
// later without disturbing other owners' bindings for the type.
func (o *ElementObject) AddEvent(owner Object, eventType string, handler EventHandler) {
	ownerKey := documentOwner
	var target EventTarget
	if owner == nil {
		target = o.engine.DocumentTarget()
	} else {
		if o.element == nil {
			panic("renderengine: AddEvent on an object with no element")
		}
		ownerKey = owner.Name()
		target = o.element
	}
	key := ownerKey + "," + eventType
	// Re-binding the same key replaces the previous handler cleanly.
	if prev, ok := o.bindings[key]; ok {
		prev.target.Detach(prev.eventType, prev.owner)
	}
	target.Attach(eventType, ownerKey, handler)
	o.bindings[key] = eventBinding{target: target, eventType: eventType, owner: ownerKey}
}

// RemoveEvent removes the binding added by the same (owner, eventType) pair.
// The bookkeeping entry is deleted whether or not a binding was found.
func (o *ElementObject) RemoveEvent(owner Object, eventType string) {
	ownerKey := documentOwner
	if owner != nil {
		ownerKey = owner.Name()
	}
	key := ownerKey + "," + eventType
	if b, ok := o.bindings[key]; ok {
		b.target.Detach(b.eventType, b.owner)
	}
	delete(o.bindings, key)
}

// BindingCount returns the number of outstanding event bindings.
func (o *ElementObject) BindingCount() int {
	return len(o.bindings)
}

// Destroy detaches every outstanding binding, then releases the object.
// No external listener survives the object.
func (o *ElementObject) Destroy() {
	if o.Destroyed() {
		return
	}
	for _, b := range o.bindings {
		b.target.Detach(b.eventType, b.owner)
	}
	o.bindings = nil
	o.element = nil
	o.BaseObject.Destroy()
}
