package renderengine

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in an engine script.
type scriptStep struct {
	Action string `json:"action"`
	FPS    int    `json:"fps,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Millis int    `json:"millis,omitempty"`
}

// engineScript is the top-level JSON structure for an engine script.
type engineScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences lifecycle operations against an engine from a JSON
// script: run, pause, step, setfps, wait (frames or millis), and shutdown.
// It is used to reproduce scheduling scenarios deterministically.
type ScriptRunner struct {
	engine *Engine
	steps  []scriptStep
	cursor int
	done   bool
}

// LoadEngineScript parses a JSON script and returns a runner bound to e.
func LoadEngineScript(e *Engine, jsonData []byte) (*ScriptRunner, error) {
	var script engineScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse engine script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse engine script: no steps")
	}
	return &ScriptRunner{engine: e, steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Advance executes the next step. Wait steps convert to a frame-count or
// wall-delay target returned to the caller, which decides how time passes
// (a test advances its manual clock; a live driver sleeps).
func (r *ScriptRunner) Advance() (wait time.Duration, ok bool) {
	if r.done {
		return 0, false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return 0, false
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "run":
		r.engine.Run()
	case "pause":
		r.engine.Pause()
	case "step":
		r.engine.Step()
	case "shutdown":
		r.engine.Shutdown()
	case "setfps":
		r.engine.SetFPS(st.FPS)
	case "wait":
		if st.Millis > 0 {
			wait = time.Duration(st.Millis) * time.Millisecond
		} else if st.Frames > 0 {
			wait = time.Duration(int64(st.Frames)*r.engine.GetFrameTime()) * time.Millisecond
		}
	}

	if r.cursor >= len(r.steps) {
		r.done = true
	}
	return wait, true
}
