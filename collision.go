package rowan

import "math"

// CapCollider tags hit volumes consumed by ResolveCollisions.
var CapCollider = NewCapability("collider")

// CircleCollider is a circular hit volume centered on the entity position
// plus an offset.
type CircleCollider struct {
	Base

	OffsetX, OffsetY float64
	Radius           float64

	// IsTrigger disables the physical response. Overlapping triggers still
	// report contacts.
	IsTrigger bool

	// OnContact, when set, is called once per overlapping pair per
	// ResolveCollisions call, with the owning entity first.
	OnContact func(self, other *Entity)
}

// NewCircleCollider returns a solid circle collider with the given radius.
func NewCircleCollider(radius float64) *CircleCollider {
	return &CircleCollider{Radius: radius}
}

// Capabilities implements Component.
func (c *CircleCollider) Capabilities() []Capability {
	return []Capability{CapCollider}
}

// BoxCollider is an axis-aligned rectangular hit volume. The offset is the
// top-left corner relative to the entity position. Rotation and scale on
// the owning entity do not affect the box.
type BoxCollider struct {
	Base

	OffsetX, OffsetY float64
	Width, Height    float64

	IsTrigger bool
	OnContact func(self, other *Entity)
}

// NewBoxCollider returns a solid box collider with the given size.
func NewBoxCollider(width, height float64) *BoxCollider {
	return &BoxCollider{Width: width, Height: height}
}

// Capabilities implements Component.
func (b *BoxCollider) Capabilities() []Capability {
	return []Capability{CapCollider}
}

// --- Solver ---

// colliderRef is one collidable entity gathered from the tree walk.
// World position is cached per pass so corrections made earlier in a pass
// are visible to later pairs.
type colliderRef struct {
	entity *Entity
	xform  *Transform
	body   *KineticBody // nil for static colliders
	circle *CircleCollider
	box    *BoxCollider
	wx, wy float64
}

func (r *colliderRef) refreshWorld() {
	m := r.xform.WorldMatrix()
	r.wx = m[4]
	r.wy = m[5]
}

// nudge moves the body by (dx, dy) in both local and cached world
// coordinates. Exact only when no ancestor scales or rotates; nested
// bodies under transformed parents are outside the solver's contract.
func (r *colliderRef) nudge(dx, dy float64) {
	r.xform.X += dx
	r.xform.Y += dy
	r.wx += dx
	r.wy += dy
}

func (r *colliderRef) isTrigger() bool {
	if r.circle != nil {
		return r.circle.IsTrigger
	}
	return r.box.IsTrigger
}

func (r *colliderRef) contactFn() func(self, other *Entity) {
	if r.circle != nil {
		return r.circle.OnContact
	}
	return r.box.OnContact
}

func (r *colliderRef) worldRect() Rect {
	return Rect{
		X:      r.wx + r.box.OffsetX,
		Y:      r.wy + r.box.OffsetY,
		Width:  r.box.Width,
		Height: r.box.Height,
	}
}

func (r *colliderRef) mass() float64 {
	if r.body == nil || r.body.Mass <= 0 {
		return 1
	}
	return r.body.Mass
}

// ResolveCollisions walks the subtree under root, finds every entity
// carrying both a Transform and a collider, and resolves overlaps.
//
// Circle pairs whose entities both carry a KineticBody get the physical
// response: positional correction proportional to mass on every pass, a
// velocity impulse on the first. Every other overlapping pair, and any
// pair involving a trigger, only reports contacts. Contacts fire once per
// call regardless of passes.
//
// Multiple passes settle stacked bodies without jitter; 4 is a reasonable
// default.
func ResolveCollisions(root *Entity, passes int) {
	if root == nil || passes < 1 {
		return
	}
	refs := gatherColliders(root, nil)
	if len(refs) < 2 {
		return
	}

	for pass := 0; pass < passes; pass++ {
		for i := range refs {
			refs[i].refreshWorld()
		}
		for i := 0; i < len(refs); i++ {
			for j := i + 1; j < len(refs); j++ {
				resolvePair(&refs[i], &refs[j], pass)
			}
		}
	}
}

func gatherColliders(e *Entity, out []colliderRef) []colliderRef {
	if c := e.GetComponent(CapCollider); c != nil {
		ref := colliderRef{entity: e}
		ref.xform, _ = Get[*Transform](e, CapTransform)
		ref.body, _ = Get[*KineticBody](e, CapKinetic)
		switch col := c.(type) {
		case *CircleCollider:
			ref.circle = col
		case *BoxCollider:
			ref.box = col
		}
		if ref.xform != nil && (ref.circle != nil || ref.box != nil) {
			out = append(out, ref)
		}
	}
	for _, child := range e.children {
		out = gatherColliders(child, out)
	}
	return out
}

func resolvePair(a, b *colliderRef, pass int) {
	var overlap bool
	switch {
	case a.circle != nil && b.circle != nil:
		overlap = circlesOverlap(
			a.wx+a.circle.OffsetX, a.wy+a.circle.OffsetY, a.circle.Radius,
			b.wx+b.circle.OffsetX, b.wy+b.circle.OffsetY, b.circle.Radius)
	case a.circle != nil && b.box != nil:
		overlap = circleRectOverlap(
			a.wx+a.circle.OffsetX, a.wy+a.circle.OffsetY, a.circle.Radius,
			b.worldRect())
	case a.box != nil && b.circle != nil:
		overlap = circleRectOverlap(
			b.wx+b.circle.OffsetX, b.wy+b.circle.OffsetY, b.circle.Radius,
			a.worldRect())
	default:
		overlap = a.worldRect().Intersects(b.worldRect())
	}
	if !overlap {
		return
	}

	if pass == 0 {
		if fn := a.contactFn(); fn != nil {
			fn(a.entity, b.entity)
		}
		if fn := b.contactFn(); fn != nil {
			fn(b.entity, a.entity)
		}
	}

	if a.isTrigger() || b.isTrigger() {
		return
	}
	if a.circle != nil && b.circle != nil && a.body != nil && b.body != nil {
		separateCircles(a, b, pass)
	}
}

// separateCircles pushes two overlapping dynamic circles apart proportional
// to mass and, on the first pass, exchanges a velocity impulse along the
// collision normal.
func separateCircles(a, b *colliderRef, pass int) {
	ax := a.wx + a.circle.OffsetX
	ay := a.wy + a.circle.OffsetY
	bx := b.wx + b.circle.OffsetX
	by := b.wy + b.circle.OffsetY

	dx := bx - ax
	dy := by - ay
	distSq := dx*dx + dy*dy
	minDist := a.circle.Radius + b.circle.Radius
	if distSq < 1e-9 {
		// Coincident centers have no usable normal. Separate along X.
		dx, dy, distSq = 1, 0, 1
	}

	dist := math.Sqrt(distSq)
	nx := dx / dist
	ny := dy / dist

	overlap := minDist - dist
	if overlap <= 0 {
		return
	}
	am := a.mass()
	bm := b.mass()
	totalMass := am + bm
	a.nudge(-nx*overlap*(bm/totalMass), -ny*overlap*(bm/totalMass))
	b.nudge(nx*overlap*(am/totalMass), ny*overlap*(am/totalMass))

	if pass > 0 {
		return
	}

	// Relative velocity along the collision normal. Positive means the
	// bodies are approaching.
	dvx := a.body.VX - b.body.VX
	dvy := a.body.VY - b.body.VY
	dvn := dvx*nx + dvy*ny
	if dvn <= 0 {
		return
	}

	restitution := (a.body.Restitution + b.body.Restitution) / 2
	impulse := (1 + restitution) * dvn / totalMass
	a.body.VX -= impulse * bm * nx
	a.body.VY -= impulse * bm * ny
	b.body.VX += impulse * am * nx
	b.body.VY += impulse * am * ny
}

// --- Overlap tests ---

func circlesOverlap(ax, ay, ar, bx, by, br float64) bool {
	dx := bx - ax
	dy := by - ay
	rr := ar + br
	return dx*dx+dy*dy < rr*rr
}

func circleRectOverlap(cx, cy, r float64, rect Rect) bool {
	nearX := clamp(cx, rect.X, rect.X+rect.Width)
	nearY := clamp(cy, rect.Y, rect.Y+rect.Height)
	dx := cx - nearX
	dy := cy - nearY
	return dx*dx+dy*dy < r*r
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
