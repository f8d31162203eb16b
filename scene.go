package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderable is implemented by components that draw themselves. The scene's
// draw walk hands each one the target image, the owning entity's world
// transform, and the alpha composed down the ancestor chain. Components
// implementing Renderable should include CapRenderable in their tag set so
// the walk finds them in O(1).
type Renderable interface {
	Component
	Draw(target *ebiten.Image, world [6]float64, alpha float64)
}

// CapRenderable is the broad capability shared by every drawing component.
// An entity holds at most one renderable.
var CapRenderable = NewCapability("renderable")

// Scene owns an entity tree and drives it: Init once, a per-frame update
// walk, deferred destruction, input polling, and the draw pass. The scene
// walks the tree itself; Entity.Update stays non-recursive.
type Scene struct {
	root  *Entity
	queue *DestroyQueue
	input *Input

	updateFn   func(dt float64)
	clearColor Color
	inited     bool
}

// NewScene creates a scene with a pre-created root entity.
func NewScene() *Scene {
	return &Scene{
		root:  NewEntity("root"),
		queue: NewDestroyQueue(),
		input: newInput(),
	}
}

// Root returns the scene's root entity.
func (s *Scene) Root() *Entity {
	return s.root
}

// Input returns the scene's input snapshot, refreshed at the top of every
// Step.
func (s *Scene) Input() *Input {
	return s.input
}

// DestroyQueue returns the scene's destroy queue. Most callers should use
// Scene.Destroy instead.
func (s *Scene) DestroyQueue() *DestroyQueue {
	return s.queue
}

// SetClearColor sets the color the screen is filled with at the start of
// Draw. The zero Color (fully transparent) disables the fill.
func (s *Scene) SetClearColor(c Color) {
	s.clearColor = c
}

// SetUpdateFunc installs a per-frame callback invoked after input refresh
// and before the tree walk. Pass nil to remove it.
func (s *Scene) SetUpdateFunc(fn func(dt float64)) {
	s.updateFn = fn
}

// SetDebugMode toggles the package debug checks (tree depth and child
// count thresholds).
func (s *Scene) SetDebugMode(enabled bool) {
	SetDebugMode(enabled)
}

// Init initializes the root's subtree: every component's Init in attachment
// order, parents before children. Runs once; later calls are no-ops.
// Update calls it automatically on the first frame.
func (s *Scene) Init() {
	if s.inited {
		return
	}
	s.inited = true
	s.root.Init()
}

// Spawn attaches child under parent (the root when parent is nil) and, if
// the scene is already initialized, runs the child's Init so late arrivals
// get the same lifecycle as load-time entities.
func (s *Scene) Spawn(parent, child *Entity) {
	if parent == nil {
		parent = s.root
	}
	parent.AddChild(child)
	if s.inited && child.Parent() == parent {
		child.Init()
	}
}

// Destroy schedules e for teardown at the end of the current Step (or the
// next one, when called outside a Step). Safe to call from component
// Update hooks.
func (s *Scene) Destroy(e *Entity) {
	s.queue.Enqueue(e)
}

// Update advances the scene by one displayed frame using ebiten's tick
// rate, initializing the tree first if needed.
func (s *Scene) Update() {
	if !s.inited {
		s.Init()
	}
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by a fixed dt: refresh input, run the scene
// update func, walk the tree pre-order calling Entity.Update per node,
// then flush the destroy queue. The flush is the frame's safe point for
// structural changes requested mid-walk.
func (s *Scene) Step(dt float64) {
	s.input.refresh()
	if s.updateFn != nil {
		s.updateFn(dt)
	}
	s.walkUpdate(s.root, dt)
	s.queue.Flush()
}

// walkUpdate ticks e's own components, then recurses into its children.
func (s *Scene) walkUpdate(e *Entity, dt float64) {
	e.Update(dt)
	for _, child := range e.children {
		s.walkUpdate(child, dt)
	}
}

// Draw clears the target if a clear color is set, then walks the tree
// pre-order composing world transforms from Transform components and
// invoking each entity's renderable. Draw order is tree order: parents
// under children, earlier siblings under later ones.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.clearColor.A > 0 {
		screen.Fill(s.clearColor.toRGBA())
	}
	s.drawEntity(screen, s.root, identityTransform, 1)
}

func (s *Scene) drawEntity(target *ebiten.Image, e *Entity, parentTransform [6]float64, parentAlpha float64) {
	world := parentTransform
	alpha := parentAlpha
	if tr, ok := Get[*Transform](e, CapTransform); ok {
		world = multiplyAffine(parentTransform, tr.LocalMatrix())
		alpha = parentAlpha * tr.Alpha
	}
	if alpha <= 0 {
		return
	}
	if c := e.GetComponent(CapRenderable); c != nil {
		if r, ok := c.(Renderable); ok {
			r.Draw(target, world, alpha)
		}
	}
	for _, child := range e.children {
		s.drawEntity(target, child, world, alpha)
	}
}
