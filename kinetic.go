package rowan

import "math"

// CapKinetic tags components that integrate motion into a sibling Transform.
var CapKinetic = NewCapability("kinetic")

// Gravity is the global acceleration added to every KineticBody, scaled by
// the body's GravityScale. Screen Y grows downward, so the default pulls
// bodies down.
var Gravity = Vec2{X: 0, Y: 600}

// KineticBody moves the entity's Transform with explicit Euler integration.
// The body does nothing when the entity has no Transform.
//
// A zero-value body is valid but inert at walls (Restitution 0 absorbs all
// velocity). Use NewKineticBody for the usual defaults.
type KineticBody struct {
	Base

	VX, VY float64 // velocity, units per second
	AX, AY float64 // acceleration, units per second squared

	GravityScale float64 // multiplier applied to Gravity, 0 = ignore
	Damping      float64 // fraction of velocity shed per second, 0 = none
	MaxSpeed     float64 // speed clamp, 0 = unlimited
	Restitution  float64 // velocity kept on reflection, 0..1

	Radius float64 // collision radius, 0 = point
	Mass   float64 // used by impulses and collision response, <=0 treated as 1

	// ReflectBounds, when set, keeps the body inside the rect by reflecting
	// velocity at the edges.
	ReflectBounds *Rect
}

// NewKineticBody returns a body with unit mass and fully elastic reflection.
func NewKineticBody() *KineticBody {
	return &KineticBody{Mass: 1, Restitution: 1}
}

// Capabilities implements Component.
func (k *KineticBody) Capabilities() []Capability {
	return []Capability{CapKinetic}
}

// ApplyImpulse adds an instantaneous velocity change of impulse/mass.
func (k *KineticBody) ApplyImpulse(ix, iy float64) {
	m := k.Mass
	if m <= 0 {
		m = 1
	}
	k.VX += ix / m
	k.VY += iy / m
}

// Speed returns the current velocity magnitude.
func (k *KineticBody) Speed() float64 {
	return math.Hypot(k.VX, k.VY)
}

// Update integrates one step and writes the new position into the sibling
// Transform.
func (k *KineticBody) Update(dt float64) {
	t, ok := Get[*Transform](k.Entity(), CapTransform)
	if !ok {
		return
	}

	k.VX += (k.AX + Gravity.X*k.GravityScale) * dt
	k.VY += (k.AY + Gravity.Y*k.GravityScale) * dt

	if k.Damping > 0 {
		decay := 1 - k.Damping*dt
		if decay < 0 {
			decay = 0
		}
		k.VX *= decay
		k.VY *= decay
	}

	if k.MaxSpeed > 0 {
		speed := math.Hypot(k.VX, k.VY)
		if speed > k.MaxSpeed {
			s := k.MaxSpeed / speed
			k.VX *= s
			k.VY *= s
		}
	}

	t.X += k.VX * dt
	t.Y += k.VY * dt

	if k.ReflectBounds != nil {
		k.reflect(t)
	}
}

// reflect clamps the body inside ReflectBounds and mirrors the velocity
// component pointing out of the rect, scaled by Restitution.
func (k *KineticBody) reflect(t *Transform) {
	b := *k.ReflectBounds
	r := k.Radius

	if t.X-r < b.X {
		t.X = b.X + r
		if k.VX < 0 {
			k.VX = -k.VX * k.Restitution
		}
	} else if t.X+r > b.X+b.Width {
		t.X = b.X + b.Width - r
		if k.VX > 0 {
			k.VX = -k.VX * k.Restitution
		}
	}

	if t.Y-r < b.Y {
		t.Y = b.Y + r
		if k.VY < 0 {
			k.VY = -k.VY * k.Restitution
		}
	} else if t.Y+r > b.Y+b.Height {
		t.Y = b.Y + b.Height - r
		if k.VY > 0 {
			k.VY = -k.VY * k.Restitution
		}
	}
}
