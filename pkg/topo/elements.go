// Package topo implements an editable polygon-mesh topology kernel.
//
// The mesh is stored BMesh-style: vertices, edges, faces and loops live in
// four independent arenas and reference each other only by id. A loop is a
// face corner; loops are linked into two circular doubly-linked lists, the
// face ring (all corners of one face, in winding order) and the radial cycle
// (all corners sharing one edge, across faces). Construction is additive:
// there is no deletion operator, and degenerate input degrades to a no-op
// rather than an error wherever possible.
package topo

import "github.com/polyforge/meshedit/pkg/math"

// Element ids. Plain non-negative integers; the negative sentinels below
// mean "none". Ids carry no generation tag, so holding one across a Clear
// or LoadFromRenderMesh references whatever occupies the slot afterwards.
type (
	VertexID int32
	EdgeID   int32
	FaceID   int32
	LoopID   int32
)

// "None" sentinels for each id type.
const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1
	NoLoop   LoopID   = -1
)

// Flags is a per-element bitset.
type Flags uint8

// FlagSelected marks an element as selected in the editor.
const FlagSelected Flags = 1 << 0

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Set returns f with the bits in mask set.
func (f Flags) Set(mask Flags) Flags {
	return f | mask
}

// Clear returns f with the bits in mask cleared.
func (f Flags) Clear(mask Flags) Flags {
	return f &^ mask
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos math.Vec3

	// AnyLoop is one loop whose corner sits at this vertex, or NoLoop for
	// an isolated vertex. Traversal entry point only; which loop it names
	// is arbitrary.
	AnyLoop LoopID

	Flags Flags
}

// Edge connects two vertices. The endpoint pair is conceptually unordered;
// V0/V1 keep the order the edge was first created with.
type Edge struct {
	V0, V1 VertexID

	// AnyLoop is one loop of this edge's radial cycle, or NoLoop for a
	// wire edge no face uses.
	AnyLoop LoopID

	Flags Flags
}

// Face is a polygon bounded by LoopCount loops.
type Face struct {
	// AnyLoop is the entry point into the face ring; walking Next from it
	// LoopCount times returns to it.
	AnyLoop LoopID

	LoopCount int

	// Material groups faces into render submeshes. Arbitrary non-negative.
	Material int

	Flags Flags
}

// Loop is a face corner: the unit tying a face to the vertex at one of its
// corners and to the edge leaving that corner toward the next one.
type Loop struct {
	Face FaceID
	Vert VertexID
	Edge EdgeID

	// Face ring links, circular over the owning face's corners.
	Next, Prev LoopID

	// Radial cycle links, circular over every loop sharing Edge.
	RadialNext, RadialPrev LoopID

	Flags Flags

	// UV is the per-corner texture coordinate, origin by default.
	UV math.Vec2
}
