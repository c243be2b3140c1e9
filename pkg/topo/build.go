package topo

import (
	"errors"

	"github.com/polyforge/meshedit/pkg/math"
)

// ErrFaceTooFewVerts is returned by AddFace for fewer than 3 vertices.
// It is the builder's only hard failure; everything else degrades to a
// no-op so degenerate meshes survive live editing.
var ErrFaceTooFewVerts = errors.New("topo: face needs at least 3 vertices")

// AddVertex allocates a vertex at pos with no incident loops.
func (m *Mesh) AddVertex(pos math.Vec3) VertexID {
	id := m.Verts.Alloc()
	*m.Verts.Get(id) = Vertex{Pos: pos, AnyLoop: NoLoop}
	return id
}

// GetOrCreateEdge returns the edge connecting the unordered pair (a, b),
// creating it if none exists. Never creates a duplicate edge between the
// same pair, regardless of argument order.
func (m *Mesh) GetOrCreateEdge(a, b VertexID) EdgeID {
	key := edgeKey(a, b)
	if id, ok := m.edgeIndex[key]; ok {
		return id
	}
	id := m.Edges.Alloc()
	*m.Edges.Get(id) = Edge{V0: a, V1: b, AnyLoop: NoLoop}
	if m.edgeIndex == nil {
		m.edgeIndex = make(map[uint64]EdgeID)
	}
	m.edgeIndex[key] = id
	return id
}

// AddFace builds a face over the given vertices in winding order, creating
// any missing edges and one loop per corner. The loops are linked into a
// face ring in input order and spliced into their edges' radial cycles.
// Corner UVs default to the origin; set them afterwards with SetFaceUVs.
// Returns ErrFaceTooFewVerts for fewer than 3 vertices.
func (m *Mesh) AddFace(verts []VertexID, material int) (FaceID, error) {
	if len(verts) < 3 {
		return NoFace, ErrFaceTooFewVerts
	}

	f := m.Faces.Alloc()
	*m.Faces.Get(f) = Face{AnyLoop: NoLoop, LoopCount: len(verts), Material: material}

	loops := make([]LoopID, len(verts))
	for i, v := range verts {
		next := verts[(i+1)%len(verts)]
		e := m.GetOrCreateEdge(v, next)

		l := m.Loops.Alloc()
		*m.Loops.Get(l) = Loop{
			Face:       f,
			Vert:       v,
			Edge:       e,
			Next:       NoLoop,
			Prev:       NoLoop,
			RadialNext: NoLoop,
			RadialPrev: NoLoop,
		}
		loops[i] = l

		// First loop to touch a vertex becomes its entry point.
		if vert := m.Verts.Get(v); vert.AnyLoop == NoLoop {
			vert.AnyLoop = l
		}

		m.insertRadial(l, e)
	}

	n := len(loops)
	for i, l := range loops {
		loop := m.Loops.Get(l)
		loop.Next = loops[(i+1)%n]
		loop.Prev = loops[(i-1+n)%n]
	}
	m.Faces.Get(f).AnyLoop = loops[0]

	return f, nil
}

// AddFaceUV builds a face like AddFace and assigns per-corner UVs from uvs.
func (m *Mesh) AddFaceUV(verts []VertexID, uvs []math.Vec2, material int) (FaceID, error) {
	f, err := m.AddFace(verts, material)
	if err != nil {
		return NoFace, err
	}
	m.SetFaceUVs(f, uvs)
	return f, nil
}

// SetFaceUVs assigns uvs to the face's corners in ring order, starting at
// AnyLoop. Stops after min(LoopCount, len(uvs)) corners, or earlier if the
// ring is broken; partial assignment is accepted silently. No-op on a dead
// face or one with no loops.
func (m *Mesh) SetFaceUVs(f FaceID, uvs []math.Vec2) {
	if !m.Faces.Alive(f) {
		return
	}
	face := m.Faces.Get(f)
	if face.AnyLoop == NoLoop {
		return
	}
	n := face.LoopCount
	if len(uvs) < n {
		n = len(uvs)
	}
	l := face.AnyLoop
	for i := 0; i < n; i++ {
		if l == NoLoop {
			return
		}
		loop := m.Loops.Get(l)
		loop.UV = uvs[i]
		l = loop.Next
	}
}

// insertRadial splices loop l into edge e's radial cycle. A first loop
// becomes a self-cycle and the edge's entry point; later loops splice in
// right after the entry point. Position within the cycle carries no
// meaning, only membership does, so an O(1) splice at an arbitrary spot
// is enough. Any number of loops per edge is accepted (non-manifold fans
// included).
func (m *Mesh) insertRadial(l LoopID, e EdgeID) {
	edge := m.Edges.Get(e)
	loop := m.Loops.Get(l)

	if edge.AnyLoop == NoLoop {
		loop.RadialNext = l
		loop.RadialPrev = l
		edge.AnyLoop = l
		return
	}

	a := edge.AnyLoop
	b := m.Loops.Get(a).RadialNext
	loop.RadialPrev = a
	loop.RadialNext = b
	m.Loops.Get(a).RadialNext = l
	m.Loops.Get(b).RadialPrev = l
}
