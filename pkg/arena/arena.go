// Package arena provides stable-index slot storage with free-list reuse.
//
// An Arena hands out integer ids that stay valid for the lifetime of the
// record: slots are never moved or compacted, and a freed id is recycled
// LIFO by a later Alloc. Records reference each other by id, never by
// pointer, so cyclic structures carry no ownership cycles.
package arena

// Arena stores homogeneous records in stable slots addressed by id.
// The zero value is an empty arena ready for use.
type Arena[T any, ID ~int32] struct {
	slots []slot[T]
	free  []ID
	live  int
}

type slot[T any] struct {
	value T
	alive bool
}

// Alloc returns a free slot id, reusing the most recently freed slot if any
// exist and growing the backing storage by one otherwise. The slot is zeroed,
// so a reused id never exposes the previous occupant's data.
func (a *Arena[T, ID]) Alloc() ID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id] = slot[T]{alive: true}
		a.live++
		return id
	}
	a.slots = append(a.slots, slot[T]{alive: true})
	a.live++
	return ID(len(a.slots) - 1)
}

// Get returns a pointer to the slot's record. The id must be in range;
// calling Get on a freed slot returns the zeroed record without complaint.
// Callers that may hold stale ids must check Alive first.
func (a *Arena[T, ID]) Get(id ID) *T {
	return &a.slots[id].value
}

// Alive reports whether id names a live slot. Out-of-range ids (including
// negative sentinels) are dead.
func (a *Arena[T, ID]) Alive(id ID) bool {
	return id >= 0 && int(id) < len(a.slots) && a.slots[id].alive
}

// Free releases the slot for reuse by a later Alloc. Freeing a dead or
// out-of-range id is a no-op.
func (a *Arena[T, ID]) Free(id ID) {
	if !a.Alive(id) {
		return
	}
	a.slots[id].alive = false
	a.free = append(a.free, id)
	a.live--
}

// Cap returns the number of slots ever allocated, live or dead. Full-table
// scans iterate ids 0..Cap-1 and filter with Alive.
func (a *Arena[T, ID]) Cap() ID {
	return ID(len(a.slots))
}

// Len returns the number of live slots.
func (a *Arena[T, ID]) Len() int {
	return a.live
}

// Reset discards every slot and the free list, keeping allocated capacity.
func (a *Arena[T, ID]) Reset() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.live = 0
}
