package arena

import "testing"

type record struct {
	Name string
	Link int32
}

func TestAllocGrows(t *testing.T) {
	var a Arena[record, int32]

	id0 := a.Alloc()
	id1 := a.Alloc()

	if id0 != 0 || id1 != 1 {
		t.Errorf("expected ids 0 and 1, got %d and %d", id0, id1)
	}
	if a.Cap() != 2 {
		t.Errorf("expected cap 2, got %d", a.Cap())
	}
	if a.Len() != 2 {
		t.Errorf("expected len 2, got %d", a.Len())
	}
}

func TestFreeReuseLIFO(t *testing.T) {
	var a Arena[record, int32]

	a.Alloc()
	id1 := a.Alloc()
	id2 := a.Alloc()

	a.Free(id1)
	a.Free(id2)

	// Most recently freed comes back first.
	if got := a.Alloc(); got != id2 {
		t.Errorf("expected reuse of %d, got %d", id2, got)
	}
	if got := a.Alloc(); got != id1 {
		t.Errorf("expected reuse of %d, got %d", id1, got)
	}
	if a.Cap() != 3 {
		t.Errorf("expected cap to stay 3, got %d", a.Cap())
	}
}

func TestReusedSlotIsZeroed(t *testing.T) {
	var a Arena[record, int32]

	id := a.Alloc()
	*a.Get(id) = record{Name: "stale", Link: 7}

	a.Free(id)
	got := a.Alloc()
	if got != id {
		t.Fatalf("expected reuse of %d, got %d", id, got)
	}
	if !a.Alive(id) {
		t.Error("reused slot should be alive")
	}
	if r := a.Get(id); r.Name != "" || r.Link != 0 {
		t.Errorf("reused slot holds stale data: %+v", *r)
	}
}

func TestFreeIdempotent(t *testing.T) {
	var a Arena[record, int32]

	id := a.Alloc()
	a.Free(id)
	a.Free(id) // no-op
	a.Free(99) // out of range, no-op
	a.Free(-1) // sentinel, no-op

	if a.Len() != 0 {
		t.Errorf("expected len 0, got %d", a.Len())
	}
	// Double free must not put the id on the free list twice.
	first := a.Alloc()
	second := a.Alloc()
	if first == second {
		t.Errorf("double free corrupted free list: got %d twice", first)
	}
}

func TestAlive(t *testing.T) {
	var a Arena[record, int32]

	if a.Alive(0) || a.Alive(-1) {
		t.Error("empty arena has no live slots")
	}
	id := a.Alloc()
	if !a.Alive(id) {
		t.Error("allocated slot should be alive")
	}
	a.Free(id)
	if a.Alive(id) {
		t.Error("freed slot should be dead")
	}
}

func TestReset(t *testing.T) {
	var a Arena[record, int32]

	a.Alloc()
	id := a.Alloc()
	a.Free(id)
	a.Reset()

	if a.Cap() != 0 || a.Len() != 0 {
		t.Errorf("expected empty arena after reset, got cap %d len %d", a.Cap(), a.Len())
	}
	if got := a.Alloc(); got != 0 {
		t.Errorf("expected fresh ids after reset, got %d", got)
	}
}
