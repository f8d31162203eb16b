package rowan

// DestroyQueue defers entity teardown to a safe point. Components may
// request destruction mid-update without invalidating the frame's tree
// walk; the scene flushes the queue once the walk is over.
//
// Enqueue order is preserved. Enqueuing the same entity twice, or an
// entity that is already destroyed by flush time (say its ancestor was
// queued ahead of it), is harmless.
type DestroyQueue struct {
	pending []*Entity
}

// NewDestroyQueue creates an empty queue.
func NewDestroyQueue() *DestroyQueue {
	return &DestroyQueue{}
}

// Enqueue schedules e for destruction at the next Flush. Nil, already
// destroyed, and already queued entities are skipped.
func (q *DestroyQueue) Enqueue(e *Entity) {
	if e == nil || e.IsDestroyed() {
		return
	}
	for _, p := range q.pending {
		if p == e {
			return
		}
	}
	q.pending = append(q.pending, e)
}

// Len returns the number of entities waiting to be destroyed.
func (q *DestroyQueue) Len() int {
	return len(q.pending)
}

// Flush destroys every queued entity in enqueue order and empties the
// queue. Entities destroyed by an earlier flush entry (subtree members)
// are skipped. Returns the number of Destroy calls actually made.
func (q *DestroyQueue) Flush() int {
	destroyed := 0
	for i, e := range q.pending {
		if !e.IsDestroyed() {
			e.Destroy()
			destroyed++
		}
		q.pending[i] = nil
	}
	q.pending = q.pending[:0]
	return destroyed
}
