package rowan

// A Capability names a role a component can fill on an entity. Components
// declare the full set of capabilities they satisfy, so a query for a broad
// capability (say CapRenderable) matches any attached component that lists
// it, while a narrow one (CapSprite) matches only its own kind. An entity
// holds at most one component per capability.
//
// Capabilities are cheap value handles backed by a process-global id
// registry. Compare them with ==; the zero Capability matches nothing.
type Capability struct {
	id   uint32
	name string
}

// capabilityIDCounter is a plain counter (no atomics, rowan is single-threaded).
// Ids start at 1 so the zero Capability stays invalid.
var capabilityIDCounter uint32

// NewCapability registers a new capability under the given name and returns
// its handle. Call once per capability, at package or program init.
func NewCapability(name string) Capability {
	capabilityIDCounter++
	return Capability{id: capabilityIDCounter, name: name}
}

// Name returns the name the capability was registered under.
func (c Capability) Name() string {
	return c.name
}

// IsZero reports whether c is the invalid zero capability.
func (c Capability) IsZero() bool {
	return c.id == 0
}
