package rowan

// Component is a unit of behavior attached to an Entity. The entity drives
// the three lifecycle hooks: Init once when its subtree initializes, Update
// every frame, Destroy during teardown. Capabilities reports the tag set the
// component satisfies (at least one entry); the entity indexes it under
// every tag at attach time.
//
// Concrete components embed Base for the back-reference and no-op hooks,
// then override what they need and implement Capabilities.
type Component interface {
	Init()
	Update(dt float64)
	Destroy()

	// Capabilities returns every capability this component satisfies.
	// The returned slice MUST NOT change over the component's lifetime.
	Capabilities() []Capability

	// Entity returns the owning entity, or nil while detached.
	Entity() *Entity

	setEntity(e *Entity)
}

// Base is the embeddable core of a component: it stores the entity
// back-reference and provides no-op lifecycle hooks, so concrete components
// override only the hooks they care about.
type Base struct {
	entity *Entity
}

// Entity returns the entity this component is attached to, or nil.
func (b *Base) Entity() *Entity {
	return b.entity
}

func (b *Base) setEntity(e *Entity) {
	b.entity = e
}

// Init is a no-op. Override in concrete components as needed.
func (b *Base) Init() {}

// Update is a no-op. Override in concrete components as needed.
func (b *Base) Update(dt float64) {}

// Destroy is a no-op. Override in concrete components as needed.
func (b *Base) Destroy() {}

// Get returns the component satisfying cap on e, type-asserted to T.
// The second result is false when no component satisfies cap or the
// attached one is not a T.
func Get[T Component](e *Entity, cap Capability) (T, bool) {
	c := e.GetComponent(cap)
	t, ok := c.(T)
	return t, ok
}
