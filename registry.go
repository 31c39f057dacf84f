package renderengine

import (
	"fmt"

	"go.uber.org/zap"
)

// identityRegistry assigns monotonically increasing ids to managed objects
// and tracks how many are alive. The counter is never reset, so ids stay
// unique across an engine restart within the same process.
type identityRegistry struct {
	counter uint64
	live    int64
}

// assign produces the next id for an object named name and counts it live.
func (r *identityRegistry) assign(name string) string {
	r.counter++
	r.live++
	return fmt.Sprintf("%s%d", name, r.counter)
}

// release uncounts one live object.
func (r *identityRegistry) release() {
	r.live--
}

// Create registers obj with the identity registry and returns its id.
// Panics if the engine has not been started. If the engine is shutting
// down, the candidate is destroyed immediately and "" is returned so no
// orphaned reference survives the teardown.
func (e *Engine) Create(obj Object) string {
	e.mu.Lock()
	if e.shuttingDown {
		e.mu.Unlock()
		e.log.Warn("creation refused during shutdown", zap.String("name", obj.Name()))
		obj.Destroy()
		return ""
	}
	if !e.started {
		e.mu.Unlock()
		panic("renderengine: Create called before Startup")
	}
	id := e.registry.assign(obj.Name())
	e.mu.Unlock()

	obj.SetID(id)
	e.log.Debug("created", zap.String("id", id))
	return id
}

// Destroy releases obj. A nil argument is ignored with a warning.
func (e *Engine) Destroy(obj Object) {
	if obj == nil {
		e.log.Warn("destroy of a nil object ignored")
		return
	}
	obj.Destroy()
}

// release is called from BaseObject.Destroy for registered objects.
func (e *Engine) release(id string) {
	e.mu.Lock()
	e.registry.release()
	e.mu.Unlock()
	e.log.Debug("destroyed", zap.String("id", id))
}

// LiveObjects returns the number of registered objects not yet destroyed.
func (e *Engine) LiveObjects() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.live
}
