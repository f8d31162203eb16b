package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Mouse buttons ---

// MouseButton identifies a mouse button in input queries.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

const mouseButtonCount = 3

// --- Key modifiers ---

// KeyModifiers is a bitmask of modifier keys held during a frame.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all modifiers in mask are set.
func (m KeyModifiers) Has(mask KeyModifiers) bool {
	return m&mask == mask
}

func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// --- Hit shapes ---

// HitShape tests whether a point in local coordinates falls inside an area.
// Use shapes together with Transform.WorldToLocal to pick entities under
// the cursor.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Synthetic events ---

// syntheticPointerEvent represents a single injected pointer event.
// One event is consumed per refresh; while the queue is non-empty the
// real mouse is ignored so scripted sequences replay deterministically.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// --- Input snapshot ---

// Input is a per-frame snapshot of pointer and keyboard state. The scene
// refreshes it once per Step, before any component updates run, so every
// component observes the same state within a frame.
//
// Edge queries (JustPressed, JustReleased) compare against the previous
// frame's snapshot. Keys must be registered with WatchKey before their
// edges can be observed; KeyPressed alone works for any key.
type Input struct {
	cursorX, cursorY float64
	wheelX, wheelY   float64
	mods             KeyModifiers

	down     [mouseButtonCount]bool
	prevDown [mouseButtonCount]bool

	watched []ebiten.Key
	keyDown map[ebiten.Key]bool
	keyPrev map[ebiten.Key]bool

	injectQueue []syntheticPointerEvent
	injected    bool
}

func newInput() *Input {
	return &Input{
		keyDown: make(map[ebiten.Key]bool),
		keyPrev: make(map[ebiten.Key]bool),
	}
}

// refresh advances the snapshot by one frame. Synthetic events take
// priority over real device polling.
func (in *Input) refresh() {
	in.prevDown = in.down
	for k, v := range in.keyDown {
		in.keyPrev[k] = v
	}

	if len(in.injectQueue) > 0 {
		evt := in.injectQueue[0]
		copy(in.injectQueue, in.injectQueue[1:])
		in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

		in.cursorX = evt.x
		in.cursorY = evt.y
		in.down[evt.button] = evt.pressed
		in.wheelX = 0
		in.wheelY = 0
		in.injected = true
		return
	}

	if in.injected {
		// Queue drained last frame. Clear held synthetic buttons so a
		// script cannot leave a phantom press behind.
		in.down = [mouseButtonCount]bool{}
		in.injected = false
	}

	mx, my := ebiten.CursorPosition()
	in.cursorX = float64(mx)
	in.cursorY = float64(my)
	in.wheelX, in.wheelY = ebiten.Wheel()
	in.mods = readModifiers()

	in.down[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.down[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.down[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	for _, k := range in.watched {
		in.keyDown[k] = ebiten.IsKeyPressed(k)
	}
}

// CursorPosition returns the cursor position in screen coordinates.
func (in *Input) CursorPosition() (float64, float64) {
	return in.cursorX, in.cursorY
}

// Wheel returns the scroll wheel delta for the current frame.
func (in *Input) Wheel() (float64, float64) {
	return in.wheelX, in.wheelY
}

// Modifiers returns the modifier keys held during the current frame.
func (in *Input) Modifiers() KeyModifiers {
	return in.mods
}

// Pressed reports whether the button is held down this frame.
func (in *Input) Pressed(b MouseButton) bool {
	if int(b) >= mouseButtonCount {
		return false
	}
	return in.down[b]
}

// JustPressed reports whether the button went down this frame.
func (in *Input) JustPressed(b MouseButton) bool {
	if int(b) >= mouseButtonCount {
		return false
	}
	return in.down[b] && !in.prevDown[b]
}

// JustReleased reports whether the button went up this frame.
func (in *Input) JustReleased(b MouseButton) bool {
	if int(b) >= mouseButtonCount {
		return false
	}
	return !in.down[b] && in.prevDown[b]
}

// WatchKey registers a key for edge tracking. Watching a key twice is
// harmless.
func (in *Input) WatchKey(k ebiten.Key) {
	for _, w := range in.watched {
		if w == k {
			return
		}
	}
	in.watched = append(in.watched, k)
}

// KeyPressed reports whether the key is held down this frame. Watched keys
// answer from the frame snapshot; unwatched keys fall through to a live
// device poll.
func (in *Input) KeyPressed(k ebiten.Key) bool {
	if v, ok := in.keyDown[k]; ok {
		return v
	}
	return ebiten.IsKeyPressed(k)
}

// KeyJustPressed reports whether a watched key went down this frame.
func (in *Input) KeyJustPressed(k ebiten.Key) bool {
	return in.keyDown[k] && !in.keyPrev[k]
}

// KeyJustReleased reports whether a watched key went up this frame.
func (in *Input) KeyJustReleased(k ebiten.Key) bool {
	return !in.keyDown[k] && in.keyPrev[k]
}

// --- Injection ---

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next refresh.
func (in *Input) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event at the given screen coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (in *Input) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (in *Input) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		in.InjectMove(x, y)
	}
	in.InjectRelease(toX, toY)
}
