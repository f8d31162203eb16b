package rowan

import (
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// --- ID counter ---

// entityIDCounter is a plain counter (no atomics, rowan is single-threaded).
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// --- Entity ---

// Entity is a named node in the scene tree. It owns an ordered list of
// components keyed by capability and an ordered list of children, and keeps
// a non-owning reference to its parent.
//
// Tree and component misuse (duplicate adds, removes of things not present)
// is reported as a warning and ignored; nothing here returns an error or
// panics. All methods assume single-threaded use.
type Entity struct {
	ID   uint32
	Name string

	parent   *Entity
	children []*Entity

	components   []Component // attachment order, drives lifecycle ordering
	byCapability *intmap.Map[uint32, Component]

	destroyed bool
}

// NewEntity creates a detached entity with the given name.
func NewEntity(name string) *Entity {
	return &Entity{ID: nextEntityID(), Name: name}
}

// capIndex returns the capability index, creating it on first use.
func (e *Entity) capIndex() *intmap.Map[uint32, Component] {
	if e.byCapability == nil {
		e.byCapability = intmap.New[uint32, Component](4)
	}
	return e.byCapability
}

// --- Accessors ---

// Parent returns the entity's parent, or nil for a root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index, or nil if out of range.
func (e *Entity) ChildAt(index int) *Entity {
	if index < 0 || index >= len(e.children) {
		return nil
	}
	return e.children[index]
}

// Components returns the attached components in attachment order.
// The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Components() []Component {
	return e.components
}

// NumComponents returns the number of attached components.
func (e *Entity) NumComponents() int {
	return len(e.components)
}

// IsDestroyed returns true once Destroy has run on this entity.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// --- Component management ---

// AddComponent attaches c to this entity and indexes it under every
// capability it declares. The add is rejected with a warning when c is nil,
// declares no capabilities, is already attached somewhere, or when any of
// its capabilities is already filled on this entity. A rejected add changes
// nothing.
func (e *Entity) AddComponent(c Component) {
	if c == nil {
		logger.Warn("add of nil component ignored", zap.String("entity", e.Name))
		return
	}
	if e.destroyed {
		logger.Warn("add component on destroyed entity ignored",
			zap.String("entity", e.Name))
		return
	}
	caps := c.Capabilities()
	if len(caps) == 0 {
		logger.Warn("component declares no capabilities, ignored",
			zap.String("entity", e.Name))
		return
	}
	if owner := c.Entity(); owner != nil {
		logger.Warn("component already attached, ignored",
			zap.String("entity", e.Name),
			zap.String("attachedTo", owner.Name))
		return
	}
	idx := e.capIndex()
	for _, cap := range caps {
		if cap.IsZero() {
			logger.Warn("component declares unregistered capability, ignored",
				zap.String("entity", e.Name))
			return
		}
		if _, taken := idx.Get(cap.id); taken {
			logger.Warn("capability already filled, component ignored",
				zap.String("entity", e.Name),
				zap.String("capability", cap.Name()))
			return
		}
	}
	c.setEntity(e)
	e.components = append(e.components, c)
	for _, cap := range caps {
		idx.Put(cap.id, c)
	}
}

// RemoveComponent detaches the component satisfying cap. All of the
// component's capabilities are unindexed and its back-reference cleared, so
// the instance can be attached elsewhere afterward. Removing a capability
// nothing satisfies is a warning and a no-op. Destroy is NOT invoked;
// detachment and teardown are separate steps.
func (e *Entity) RemoveComponent(cap Capability) {
	var c Component
	if e.byCapability != nil {
		c, _ = e.byCapability.Get(cap.id)
	}
	if c == nil {
		logger.Warn("remove of missing capability ignored",
			zap.String("entity", e.Name),
			zap.String("capability", cap.Name()))
		return
	}
	for _, tag := range c.Capabilities() {
		e.byCapability.Del(tag.id)
	}
	for i, have := range e.components {
		if have == c {
			copy(e.components[i:], e.components[i+1:])
			e.components[len(e.components)-1] = nil
			e.components = e.components[:len(e.components)-1]
			break
		}
	}
	c.setEntity(nil)
}

// GetComponent returns the component satisfying cap, or nil when none does.
// A component attached under several capabilities is found through any of
// them. Lookup is a map probe, not a scan. Safe on a nil entity, so
// components may query siblings without guarding their own attachment.
func (e *Entity) GetComponent(cap Capability) Component {
	if e == nil || e.byCapability == nil {
		return nil
	}
	c, _ := e.byCapability.Get(cap.id)
	return c
}

// HasComponent reports whether some attached component satisfies cap.
// Safe on a nil entity.
func (e *Entity) HasComponent(cap Capability) bool {
	if e == nil || e.byCapability == nil {
		return false
	}
	_, ok := e.byCapability.Get(cap.id)
	return ok
}

// --- Tree manipulation ---

// AddChild appends child to this entity's children and sets its parent
// reference. If child already has another parent it is reparented. Adding
// nil, adding a child already present here, or adding an ancestor (which
// would create a cycle) is a warning and a no-op.
func (e *Entity) AddChild(child *Entity) {
	if child == nil {
		logger.Warn("add of nil child ignored", zap.String("entity", e.Name))
		return
	}
	if e.destroyed || child.destroyed {
		logger.Warn("add child on destroyed entity ignored",
			zap.String("entity", e.Name),
			zap.String("child", child.Name))
		return
	}
	if child.parent == e {
		logger.Warn("child already attached, ignored",
			zap.String("entity", e.Name),
			zap.String("child", child.Name))
		return
	}
	if isAncestor(child, e) {
		logger.Warn("add child would create a cycle, ignored",
			zap.String("entity", e.Name),
			zap.String("child", child.Name))
		return
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// AddChildAt inserts child at the given index among the children.
// Same reparenting and rejection behavior as AddChild; an out-of-range
// index is a warning and a no-op.
func (e *Entity) AddChildAt(child *Entity, index int) {
	if child == nil {
		logger.Warn("add of nil child ignored", zap.String("entity", e.Name))
		return
	}
	if index < 0 || index > len(e.children) {
		logger.Warn("child index out of range, add ignored",
			zap.String("entity", e.Name),
			zap.Int("index", index))
		return
	}
	if e.destroyed || child.destroyed {
		logger.Warn("add child on destroyed entity ignored",
			zap.String("entity", e.Name),
			zap.String("child", child.Name))
		return
	}
	if child.parent == e {
		logger.Warn("child already attached, ignored",
			zap.String("entity", e.Name),
			zap.String("child", child.Name))
		return
	}
	if isAncestor(child, e) {
		logger.Warn("add child would create a cycle, ignored",
			zap.String("entity", e.Name),
			zap.String("child", child.Name))
		return
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// RemoveChild detaches child from this entity and clears its parent
// reference. Removing an entity that is not a child here (including nil)
// mutates nothing and does not fail.
func (e *Entity) RemoveChild(child *Entity) {
	if child == nil || child.parent != e {
		logger.Debug("remove of non-child ignored", zap.String("entity", e.Name))
		return
	}
	e.removeChildByPtr(child)
	child.parent = nil
}

// RemoveChildAt removes and returns the child at the given index, or nil
// (with a warning) when the index is out of range.
func (e *Entity) RemoveChildAt(index int) *Entity {
	if index < 0 || index >= len(e.children) {
		logger.Warn("child index out of range, remove ignored",
			zap.String("entity", e.Name),
			zap.Int("index", index))
		return nil
	}
	child := e.children[index]
	copy(e.children[index:], e.children[index+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	child.parent = nil
	return child
}

// RemoveFromParent detaches this entity from its parent.
// No-op if this entity has no parent.
func (e *Entity) RemoveFromParent() {
	if e.parent == nil {
		return
	}
	e.parent.RemoveChild(e)
}

// RemoveChildren detaches all children from this entity.
// Children are NOT destroyed.
func (e *Entity) RemoveChildren() {
	for _, child := range e.children {
		child.parent = nil
	}
	e.children = e.children[:0]
}

// --- Child component queries ---
//
// These look at direct children only: never this entity's own components,
// never grandchildren. The driver owns deeper traversal.

// GetComponentInChildren scans direct children in order and returns the
// matching component of the LAST child satisfying cap, or nil when none
// does. Later children deliberately shadow earlier ones.
func (e *Entity) GetComponentInChildren(cap Capability) Component {
	var found Component
	for _, child := range e.children {
		if c := child.GetComponent(cap); c != nil {
			found = c
		}
	}
	return found
}

// GetComponentsInChildren returns the matching components of every direct
// child satisfying cap, in child order.
func (e *Entity) GetComponentsInChildren(cap Capability) []Component {
	var out []Component
	for _, child := range e.children {
		if c := child.GetComponent(cap); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// GetChildWithComponent returns the first direct child satisfying cap,
// or nil when none does.
func (e *Entity) GetChildWithComponent(cap Capability) *Entity {
	for _, child := range e.children {
		if child.HasComponent(cap) {
			return child
		}
	}
	return nil
}

// GetChildrenWithComponent returns every direct child satisfying cap,
// in child order.
func (e *Entity) GetChildrenWithComponent(cap Capability) []*Entity {
	var out []*Entity
	for _, child := range e.children {
		if child.HasComponent(cap) {
			out = append(out, child)
		}
	}
	return out
}

// --- Lifecycle ---

// Init initializes this entity's components in attachment order, then each
// child in child order, recursively. A parent's components are fully
// initialized before any of its children run.
func (e *Entity) Init() {
	if e.destroyed {
		return
	}
	for _, c := range e.components {
		c.Init()
	}
	for _, child := range e.children {
		child.Init()
	}
}

// Update ticks this entity's components in attachment order. It does NOT
// recurse into children; the scene walks the tree and calls Update per
// entity, keeping traversal policy in the driver.
func (e *Entity) Update(dt float64) {
	if e.destroyed {
		return
	}
	for _, c := range e.components {
		c.Update(dt)
	}
}

// Destroy tears down this entity: component Destroy hooks run in attachment
// order, then every child is destroyed, then the entity detaches from its
// parent. Destroying an entity with no parent skips the detach step and
// still tears down the subtree. Destroy is idempotent; a second call is a
// no-op.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	for _, c := range e.components {
		c.Destroy()
	}
	for _, c := range e.components {
		c.setEntity(nil)
	}
	e.components = nil
	if e.byCapability != nil {
		e.byCapability.Clear()
		e.byCapability = nil
	}
	// Each child's own detach step shrinks the slice, so drain from the front.
	for len(e.children) > 0 {
		e.children[0].Destroy()
	}
	e.children = nil
	if e.parent == nil {
		logger.Debug("destroy of detached entity, skipping detach",
			zap.String("entity", e.Name))
		return
	}
	e.parent.removeChildByPtr(e)
	e.parent = nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Entity) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array. No-op when child is not present.
func (e *Entity) removeChildByPtr(child *Entity) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
