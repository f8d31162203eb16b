package rowan

import "testing"

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.input == nil {
		t.Fatal("input should not be nil")
	}
	if s.queue == nil {
		t.Fatal("queue should not be nil")
	}
}

func TestSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() != s.root {
		t.Error("Root() should return the internal root entity")
	}
}

func TestSceneInitRunsOnce(t *testing.T) {
	s := NewScene()
	j := &journal{}
	e := NewEntity("solo")
	e.AddComponent(&stub{name: "c", caps: []Capability{testCapAlpha}, j: j})
	s.Root().AddChild(e)

	s.Init()
	s.Init()
	assertJournal(t, j, "c.init")
}

func TestSceneStepWalksTreeOrder(t *testing.T) {
	s := NewScene()
	j := &journal{}

	parent := NewEntity("parent")
	parent.AddComponent(&stub{name: "p", caps: []Capability{testCapAlpha}, j: j})
	child := NewEntity("child")
	child.AddComponent(&stub{name: "c", caps: []Capability{testCapAlpha}, j: j})
	parent.AddChild(child)
	s.Root().AddChild(parent)

	s.Init()
	j.events = nil
	s.Step(0.016)
	assertJournal(t, j, "p.update c.update")
}

func TestSceneUpdateFuncRunsBeforeWalk(t *testing.T) {
	s := NewScene()
	j := &journal{}

	e := NewEntity("e")
	e.AddComponent(&stub{name: "c", caps: []Capability{testCapAlpha}, j: j})
	s.Root().AddChild(e)

	s.SetUpdateFunc(func(dt float64) {
		j.record("scene.update")
		if dt != 0.25 {
			t.Errorf("dt = %v, want 0.25", dt)
		}
	})

	s.Init()
	j.events = nil
	s.Step(0.25)
	assertJournal(t, j, "scene.update c.update")
}

func TestSceneSpawnBeforeInitDefersInit(t *testing.T) {
	s := NewScene()
	j := &journal{}

	e := NewEntity("early")
	e.AddComponent(&stub{name: "early", caps: []Capability{testCapAlpha}, j: j})
	s.Spawn(nil, e)

	if len(j.events) != 0 {
		t.Fatalf("spawn before scene init must not init, got %v", j.events)
	}
	s.Init()
	assertJournal(t, j, "early.init")
}

func TestSceneSpawnAfterInitInitsImmediately(t *testing.T) {
	s := NewScene()
	s.Init()

	j := &journal{}
	e := NewEntity("late")
	e.AddComponent(&stub{name: "late", caps: []Capability{testCapAlpha}, j: j})
	s.Spawn(s.Root(), e)

	assertJournal(t, j, "late.init")
	if e.Parent() != s.Root() {
		t.Error("spawned entity should hang off the root")
	}
}

func TestSceneSpawnRejectedChildSkipsInit(t *testing.T) {
	s := NewScene()
	s.Init()

	j := &journal{}
	other := NewEntity("other-parent")
	e := NewEntity("claimed")
	e.AddComponent(&stub{name: "claimed", caps: []Capability{testCapAlpha}, j: j})
	other.AddChild(e)
	e.Init()
	j.events = nil

	// Destroyed target parent rejects the reparent; Init must not rerun.
	target := NewEntity("target")
	s.Root().AddChild(target)
	target.Destroy()
	s.Spawn(target, e)

	if len(j.events) != 0 {
		t.Fatalf("rejected spawn must not init, got %v", j.events)
	}
	if e.Parent() != other {
		t.Error("rejected spawn must leave the old parent in place")
	}
}

func TestSceneDestroyDefersUntilFlush(t *testing.T) {
	s := NewScene()
	j := &journal{}

	e := NewEntity("victim")
	e.AddComponent(&stub{name: "v", caps: []Capability{testCapAlpha}, j: j})
	s.Root().AddChild(e)
	s.Init()
	j.events = nil

	s.Destroy(e)
	if e.IsDestroyed() {
		t.Fatal("Destroy must defer until the end of Step")
	}

	s.Step(0.016)
	if !e.IsDestroyed() {
		t.Fatal("Step must flush the destroy queue")
	}
	assertJournal(t, j, "v.update v.destroy")
	if len(s.Root().Children()) != 0 {
		t.Error("destroyed entity should detach from the root")
	}
}

func TestSceneDestroyFromUpdateHook(t *testing.T) {
	s := NewScene()

	var target *Entity
	target = NewEntity("self-destruct")
	target.AddComponent(&hookStub{
		caps:     []Capability{testCapAlpha},
		onUpdate: func() { s.Destroy(target) },
	})
	s.Root().AddChild(target)

	s.Init()
	s.Step(0.016)

	if !target.IsDestroyed() {
		t.Fatal("entity destroying itself in Update must be gone after the Step")
	}
}

func TestSceneStepRefreshesInput(t *testing.T) {
	s := NewScene()
	s.Init()

	s.Input().InjectPress(30, 40)
	s.Step(0.016)

	x, y := s.Input().CursorPosition()
	if x != 30 || y != 40 {
		t.Errorf("cursor = (%v, %v), want (30, 40)", x, y)
	}
	if !s.Input().Pressed(MouseButtonLeft) {
		t.Error("injected press should be visible during the frame")
	}
}

// hookStub runs a callback from Update. Used for mid-walk mutation tests.
type hookStub struct {
	Base
	caps     []Capability
	onUpdate func()
}

func (h *hookStub) Capabilities() []Capability { return h.caps }

func (h *hookStub) Update(dt float64) {
	if h.onUpdate != nil {
		h.onUpdate()
	}
}
