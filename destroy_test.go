package rowan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestroyQueueFlushOrder(t *testing.T) {
	q := NewDestroyQueue()
	j := &journal{}

	a := NewEntity("a")
	a.AddComponent(&stub{name: "a", caps: []Capability{testCapAlpha}, j: j})
	b := NewEntity("b")
	b.AddComponent(&stub{name: "b", caps: []Capability{testCapAlpha}, j: j})

	q.Enqueue(a)
	q.Enqueue(b)
	assert.Equal(t, 2, q.Len())

	destroyed := q.Flush()
	assert.Equal(t, 2, destroyed)
	assert.Equal(t, 0, q.Len())
	assertJournal(t, j, "a.destroy b.destroy")
}

func TestDestroyQueueDedupes(t *testing.T) {
	q := NewDestroyQueue()
	e := NewEntity("once")

	q.Enqueue(e)
	q.Enqueue(e)
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, 1, q.Flush())
}

func TestDestroyQueueSkipsNilAndDestroyed(t *testing.T) {
	q := NewDestroyQueue()

	gone := NewEntity("gone")
	gone.Destroy()

	q.Enqueue(nil)
	q.Enqueue(gone)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Flush())
}

func TestDestroyQueueAncestorFirst(t *testing.T) {
	q := NewDestroyQueue()

	parent := NewEntity("parent")
	child := NewEntity("child")
	parent.AddChild(child)

	// Parent queued ahead destroys the whole subtree; the child's own
	// entry must be a no-op at flush time.
	q.Enqueue(parent)
	q.Enqueue(child)
	assert.Equal(t, 2, q.Len())

	destroyed := q.Flush()
	assert.Equal(t, 1, destroyed)
	assert.True(t, parent.IsDestroyed())
	assert.True(t, child.IsDestroyed())
}

func TestDestroyQueueReusableAfterFlush(t *testing.T) {
	q := NewDestroyQueue()

	first := NewEntity("first")
	q.Enqueue(first)
	q.Flush()

	second := NewEntity("second")
	q.Enqueue(second)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Flush())
	assert.True(t, second.IsDestroyed())
}
