package renderengine

import (
	"strings"
	"testing"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	e, _ := startedEngine()

	a := &BaseObject{engine: e, name: "Sprite"}
	b := &BaseObject{engine: e, name: "Emitter"}

	idA := e.Create(a)
	idB := e.Create(b)

	if idA != "Sprite1" {
		t.Errorf("first id = %q, want %q", idA, "Sprite1")
	}
	if idB != "Emitter2" {
		t.Errorf("second id = %q, want %q", idB, "Emitter2")
	}
	if a.ID() != idA || b.ID() != idB {
		t.Error("ids were not stored on the objects")
	}
	if got := e.LiveObjects(); got != 2 {
		t.Errorf("LiveObjects = %d, want 2", got)
	}
}

func TestCreateDestroyBalancesLiveCount(t *testing.T) {
	e, _ := startedEngine()
	before := e.LiveObjects()

	obj := &BaseObject{engine: e, name: "Thing"}
	e.Create(obj)
	e.Destroy(obj)

	if got := e.LiveObjects(); got != before {
		t.Errorf("LiveObjects = %d after create+destroy, want %d", got, before)
	}
}

func TestDoubleDestroyDoesNotCorruptCount(t *testing.T) {
	e, _ := startedEngine()
	obj := &BaseObject{engine: e, name: "Thing"}
	e.Create(obj)

	e.Destroy(obj)
	e.Destroy(obj)
	obj.Destroy()

	if got := e.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects = %d after double destroy, want 0", got)
	}
	if !obj.Destroyed() {
		t.Error("object not marked destroyed")
	}
}

func TestDestroyNilIsHarmless(t *testing.T) {
	e, _ := startedEngine()
	before := e.LiveObjects()
	e.Destroy(nil)
	if got := e.LiveObjects(); got != before {
		t.Errorf("LiveObjects changed by Destroy(nil): %d -> %d", before, got)
	}
}

func TestCreateBeforeStartupPanics(t *testing.T) {
	e, _ := newTestEngine()
	defer func() {
		if recover() == nil {
			t.Fatal("Create before Startup did not panic")
		}
	}()
	e.Create(&BaseObject{engine: e, name: "Early"})
}

func TestCreateDuringShutdownRefused(t *testing.T) {
	e, _ := startedEngine()
	e.Run()

	var id string
	orphan := &BaseObject{engine: e, name: "Orphan"}
	e.OnShutdown(func() {
		id = e.Create(orphan)
	})
	e.Shutdown()

	if id != "" {
		t.Errorf("creation during shutdown returned id %q, want \"\"", id)
	}
	if !orphan.Destroyed() {
		t.Error("refused candidate was not destroyed immediately")
	}
	if got := e.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects = %d after refused creation, want 0", got)
	}
}

func TestIDCounterMonotonicAcrossRestart(t *testing.T) {
	e, _ := startedEngine()
	e.Run()
	first := e.Create(&BaseObject{engine: e, name: "Obj"})
	e.Shutdown()

	if err := e.Startup(); err != nil {
		t.Fatal(err)
	}
	second := e.Create(&BaseObject{engine: e, name: "Obj"})

	if first == second {
		t.Errorf("id %q reused after restart", second)
	}
	if !strings.HasPrefix(second, "Obj") {
		t.Errorf("id %q missing name prefix", second)
	}
}
