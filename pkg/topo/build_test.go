package topo

import (
	"errors"
	"testing"

	"github.com/polyforge/meshedit/pkg/math"
)

func TestAddVertex(t *testing.T) {
	m := New()
	v := m.AddVertex(math.Vec3{X: 1, Y: 2, Z: 3})

	if !m.Verts.Alive(v) {
		t.Fatal("new vertex should be alive")
	}
	vert := m.Verts.Get(v)
	if vert.Pos != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("position = %v, want {1 2 3}", vert.Pos)
	}
	if vert.AnyLoop != NoLoop {
		t.Errorf("isolated vertex AnyLoop = %d, want NoLoop", vert.AnyLoop)
	}
	if vert.Flags != 0 {
		t.Errorf("new vertex flags = %b, want 0", vert.Flags)
	}
}

func TestGetOrCreateEdgeDeduplicates(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})

	e1 := m.GetOrCreateEdge(a, b)
	e2 := m.GetOrCreateEdge(b, a) // reversed order, same unordered pair

	if e1 != e2 {
		t.Errorf("same pair produced edges %d and %d", e1, e2)
	}
	if m.Edges.Len() != 1 {
		t.Errorf("edge table has %d entries, want 1", m.Edges.Len())
	}
	if got := m.LookupEdge(a, b); got != e1 {
		t.Errorf("LookupEdge = %d, want %d", got, e1)
	}
}

func TestAddFaceTooFewVerts(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})

	f, err := m.AddFace([]VertexID{a, b}, 0)
	if !errors.Is(err, ErrFaceTooFewVerts) {
		t.Errorf("expected ErrFaceTooFewVerts, got %v", err)
	}
	if f != NoFace {
		t.Errorf("failed AddFace returned face %d, want NoFace", f)
	}
}

func TestAddFaceRing(t *testing.T) {
	m := New()
	verts := []VertexID{
		m.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0}),
		m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0}),
		m.AddVertex(math.Vec3{X: 1, Y: 1, Z: 0}),
		m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0}),
		m.AddVertex(math.Vec3{X: 0, Y: 2, Z: 0}),
	}
	f, err := m.AddFace(verts, 0)
	if err != nil {
		t.Fatalf("AddFace failed: %v", err)
	}

	face := m.Faces.Get(f)
	if face.LoopCount != 5 {
		t.Errorf("LoopCount = %d, want 5", face.LoopCount)
	}

	// Walking Next n times from AnyLoop must return to AnyLoop, visiting
	// the input vertices in order, every loop owned by f.
	l := face.AnyLoop
	for i := 0; i < 5; i++ {
		loop := m.Loops.Get(l)
		if loop.Face != f {
			t.Errorf("loop %d owned by face %d, want %d", l, loop.Face, f)
		}
		if loop.Vert != verts[i] {
			t.Errorf("corner %d at vertex %d, want %d", i, loop.Vert, verts[i])
		}
		if want := m.LookupEdge(verts[i], verts[(i+1)%5]); loop.Edge != want {
			t.Errorf("corner %d leaves via edge %d, want %d", i, loop.Edge, want)
		}
		if m.Loops.Get(loop.Next).Prev != l {
			t.Errorf("prev of next of loop %d is not %d", l, l)
		}
		l = loop.Next
	}
	if l != face.AnyLoop {
		t.Errorf("ring walk of 5 steps ended at %d, want %d", l, face.AnyLoop)
	}
}

func TestAddFaceSetsVertexAnyLoopOnce(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	d := m.AddVertex(math.Vec3{X: 1, Y: 1, Z: 0})

	if _, err := m.AddFace([]VertexID{a, b, c}, 0); err != nil {
		t.Fatal(err)
	}
	first := m.Verts.Get(a).AnyLoop

	if _, err := m.AddFace([]VertexID{b, a, d}, 0); err != nil {
		t.Fatal(err)
	}
	if got := m.Verts.Get(a).AnyLoop; got != first {
		t.Errorf("second face overwrote vertex AnyLoop: %d, want %d", got, first)
	}
	if loop := m.Loops.Get(first); loop.Vert != a {
		t.Errorf("vertex AnyLoop names a loop at vertex %d, want %d", loop.Vert, a)
	}
}

func TestRadialCycleSingleFace(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})

	if _, err := m.AddFace([]VertexID{a, b, c}, 0); err != nil {
		t.Fatal(err)
	}

	e := m.LookupEdge(a, b)
	loopID := m.Edges.Get(e).AnyLoop
	loop := m.Loops.Get(loopID)
	if loop.RadialNext != loopID || loop.RadialPrev != loopID {
		t.Errorf("single-loop edge should be a self-cycle, got next=%d prev=%d",
			loop.RadialNext, loop.RadialPrev)
	}
	if loop.Edge != e {
		t.Errorf("edge AnyLoop names loop on edge %d, want %d", loop.Edge, e)
	}
	if m.EdgeFaceCount(e) != 1 {
		t.Errorf("EdgeFaceCount = %d, want 1", m.EdgeFaceCount(e))
	}
}

func TestSharedEdgeRadialCycle(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	d := m.AddVertex(math.Vec3{X: 1, Y: -1, Z: 0})

	f1, err := m.AddFace([]VertexID{a, b, c}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := m.AddFace([]VertexID{b, a, d}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if m.Edges.Len() != 5 {
		t.Errorf("two triangles sharing an edge have %d edges, want 5", m.Edges.Len())
	}

	e := m.LookupEdge(a, b)
	if m.EdgeFaceCount(e) != 2 {
		t.Fatalf("shared edge radial cycle length = %d, want 2", m.EdgeFaceCount(e))
	}

	// The two radial members must come from the two different faces and
	// both reference e; the cycle must be consistent in both directions.
	l1 := m.Edges.Get(e).AnyLoop
	l2 := m.Loops.Get(l1).RadialNext
	if m.Loops.Get(l2).RadialNext != l1 {
		t.Error("radial next does not cycle back after 2 steps")
	}
	if m.Loops.Get(l1).RadialPrev != l2 || m.Loops.Get(l2).RadialPrev != l1 {
		t.Error("radial prev links inconsistent")
	}
	faces := map[FaceID]bool{m.Loops.Get(l1).Face: true, m.Loops.Get(l2).Face: true}
	if !faces[f1] || !faces[f2] {
		t.Errorf("radial members belong to %v, want {%d, %d}", faces, f1, f2)
	}
	for _, l := range []LoopID{l1, l2} {
		if m.Loops.Get(l).Edge != e {
			t.Errorf("radial member %d on edge %d, want %d", l, m.Loops.Get(l).Edge, e)
		}
	}
}

func TestNonManifoldFanAccepted(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})

	// Three faces around one edge.
	for i := 0; i < 3; i++ {
		c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: float32(i)})
		if _, err := m.AddFace([]VertexID{a, b, c}, 0); err != nil {
			t.Fatal(err)
		}
	}

	e := m.LookupEdge(a, b)
	if got := m.EdgeFaceCount(e); got != 3 {
		t.Errorf("fan edge radial cycle length = %d, want 3", got)
	}
}

func TestSetFaceUVs(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	f, err := m.AddFace([]VertexID{a, b, c}, 0)
	if err != nil {
		t.Fatal(err)
	}

	uvs := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	m.SetFaceUVs(f, uvs)

	loops := m.FaceLoops(f)
	for i, l := range loops {
		if got := m.Loops.Get(l).UV; got != uvs[i] {
			t.Errorf("corner %d UV = %v, want %v", i, got, uvs[i])
		}
	}
}

func TestSetFaceUVsPartialAndInvalid(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	f, err := m.AddFace([]VertexID{a, b, c}, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Shorter list assigns only the first corners.
	m.SetFaceUVs(f, []math.Vec2{{X: 5, Y: 5}})
	loops := m.FaceLoops(f)
	if got := m.Loops.Get(loops[0]).UV; got != (math.Vec2{X: 5, Y: 5}) {
		t.Errorf("corner 0 UV = %v, want {5 5}", got)
	}
	if got := m.Loops.Get(loops[1]).UV; got != (math.Vec2{}) {
		t.Errorf("corner 1 UV = %v, want origin", got)
	}

	// Dead id, empty list: silent no-ops.
	m.SetFaceUVs(NoFace, []math.Vec2{{X: 1, Y: 1}})
	m.SetFaceUVs(FaceID(99), []math.Vec2{{X: 1, Y: 1}})
	m.SetFaceUVs(f, nil)
	if got := m.Loops.Get(loops[0]).UV; got != (math.Vec2{X: 5, Y: 5}) {
		t.Errorf("no-op calls changed corner 0 UV to %v", got)
	}
}

func TestRebuildEdgeIndex(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	if _, err := m.AddFace([]VertexID{a, b, c}, 0); err != nil {
		t.Fatal(err)
	}
	before := m.LookupEdge(a, b)

	m.RebuildEdgeIndex()

	if got := m.LookupEdge(a, b); got != before {
		t.Errorf("rebuild changed lookup result: %d, want %d", got, before)
	}
	if got := m.GetOrCreateEdge(b, a); got != before {
		t.Errorf("GetOrCreateEdge after rebuild created duplicate %d, want %d", got, before)
	}
	if m.Edges.Len() != 3 {
		t.Errorf("edge count after rebuild = %d, want 3", m.Edges.Len())
	}
}

func TestClear(t *testing.T) {
	m := New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	if _, err := m.AddFace([]VertexID{a, b, c}, 0); err != nil {
		t.Fatal(err)
	}

	m.Clear()

	verts, edges, faces, loops := m.Counts()
	if verts+edges+faces+loops != 0 {
		t.Errorf("Counts after Clear = %d %d %d %d, want zeros", verts, edges, faces, loops)
	}
	if m.LookupEdge(a, b) != NoEdge {
		t.Error("edge index survived Clear")
	}
}
