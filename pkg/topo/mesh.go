package topo

import (
	"github.com/polyforge/meshedit/pkg/arena"
)

// Mesh is an editable polygon mesh. The element arenas are exported for
// read access (editor overlays walk them to draw, hit-test and toggle
// selection flags); elements must only be created through the builder
// methods so the edge index and link cycles stay consistent.
//
// A Mesh is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
type Mesh struct {
	Verts arena.Arena[Vertex, VertexID]
	Edges arena.Arena[Edge, EdgeID]
	Faces arena.Arena[Face, FaceID]
	Loops arena.Arena[Loop, LoopID]

	// edgeIndex maps an unordered endpoint pair to its edge, one entry per
	// live edge. Consulted by every edge-creating operation.
	edgeIndex map[uint64]EdgeID
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{edgeIndex: make(map[uint64]EdgeID)}
}

// Clear discards all elements and the edge index.
func (m *Mesh) Clear() {
	m.Verts.Reset()
	m.Edges.Reset()
	m.Faces.Reset()
	m.Loops.Reset()
	m.edgeIndex = make(map[uint64]EdgeID)
}

// edgeKey packs an unordered vertex pair into a map key: smaller id in the
// low 32 bits, larger in the high 32.
func edgeKey(a, b VertexID) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a)) | uint64(uint32(b))<<32
}

// RebuildEdgeIndex reconstructs the edge index from the edge table. Used
// after bulk imports, where one wholesale rebuild beats per-edge inserts.
func (m *Mesh) RebuildEdgeIndex() {
	m.edgeIndex = make(map[uint64]EdgeID, m.Edges.Len())
	for id := EdgeID(0); id < m.Edges.Cap(); id++ {
		if !m.Edges.Alive(id) {
			continue
		}
		e := m.Edges.Get(id)
		m.edgeIndex[edgeKey(e.V0, e.V1)] = id
	}
}

// LookupEdge returns the edge connecting the unordered pair (a, b), or
// NoEdge if none exists.
func (m *Mesh) LookupEdge(a, b VertexID) EdgeID {
	if id, ok := m.edgeIndex[edgeKey(a, b)]; ok {
		return id
	}
	return NoEdge
}

// FaceLoops walks the face ring from AnyLoop and returns the loop ids in
// winding order. Returns nil if the face is dead, has no loops, or the ring
// is broken (a link resolves to NoLoop before LoopCount steps complete).
func (m *Mesh) FaceLoops(f FaceID) []LoopID {
	if !m.Faces.Alive(f) {
		return nil
	}
	face := m.Faces.Get(f)
	if face.AnyLoop == NoLoop || face.LoopCount == 0 {
		return nil
	}
	loops := make([]LoopID, 0, face.LoopCount)
	l := face.AnyLoop
	for i := 0; i < face.LoopCount; i++ {
		if l == NoLoop || !m.Loops.Alive(l) {
			return nil
		}
		loops = append(loops, l)
		l = m.Loops.Get(l).Next
	}
	return loops
}

// EdgeFaceCount returns the length of the edge's radial cycle, i.e. how
// many face corners use the edge. 0 for a wire edge, 1 for a boundary edge,
// 2 for a manifold interior edge, more for a non-manifold fan.
func (m *Mesh) EdgeFaceCount(e EdgeID) int {
	if !m.Edges.Alive(e) {
		return 0
	}
	start := m.Edges.Get(e).AnyLoop
	if start == NoLoop {
		return 0
	}
	count := 0
	l := start
	for {
		count++
		l = m.Loops.Get(l).RadialNext
		if l == start || l == NoLoop {
			return count
		}
	}
}

// Counts returns the number of live vertices, edges, faces and loops.
func (m *Mesh) Counts() (verts, edges, faces, loops int) {
	return m.Verts.Len(), m.Edges.Len(), m.Faces.Len(), m.Loops.Len()
}
