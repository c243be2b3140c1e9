package topo

import (
	"sort"

	"github.com/polyforge/meshedit/pkg/math"
)

// LoadFromRenderMesh replaces the mesh contents with the triangulated render
// mesh: one topology vertex per input position and one 3-vertex face per
// index triple, tagged with its submesh's material. Per-corner UVs are taken
// from UV0 when it matches Positions in length. Triangles with out-of-range
// indices and trailing partial triples are skipped. Geometrically coincident
// input vertices stay distinct; weld beforehand if shared topology is wanted.
func (m *Mesh) LoadFromRenderMesh(rm *RenderMesh) {
	m.Clear()

	hasUV := len(rm.UV0) == len(rm.Positions)

	verts := make([]VertexID, len(rm.Positions))
	for i, p := range rm.Positions {
		verts[i] = m.AddVertex(p)
	}

	var faceVerts [3]VertexID
	var faceUVs [3]math.Vec2
	for _, sub := range rm.Submeshes {
		indices := sub.Indices
		for i := 0; i+2 < len(indices); i += 3 {
			valid := true
			for j := 0; j < 3; j++ {
				idx := indices[i+j]
				if int(idx) >= len(verts) {
					valid = false
					break
				}
				faceVerts[j] = verts[idx]
				if hasUV {
					faceUVs[j] = rm.UV0[idx]
				}
			}
			if !valid {
				continue
			}
			if hasUV {
				_, _ = m.AddFaceUV(faceVerts[:], faceUVs[:], sub.Material)
			} else {
				_, _ = m.AddFace(faceVerts[:], sub.Material)
			}
		}
	}

	// One wholesale rebuild is cheaper than trusting incremental state
	// across a bulk import.
	m.RebuildEdgeIndex()
}

// bakeCorner identifies one render vertex: corners sharing vertex, UV and
// material collapse to a single entry, everything else splits.
type bakeCorner struct {
	vert     VertexID
	uv       math.Vec2
	material int
}

// BakeToRenderMesh flattens the live faces into a render mesh. Triangles
// are emitted as-is, quads fan-split into corners 0-1-2 and 0-2-3, and
// faces with any other arity (or a broken ring) are skipped. Submeshes come
// out in ascending material order.
func (m *Mesh) BakeToRenderMesh() *RenderMesh {
	rm := &RenderMesh{}
	lookup := make(map[bakeCorner]uint32)
	byMaterial := make(map[int][]uint32)

	emit := func(l LoopID, material int) uint32 {
		loop := m.Loops.Get(l)
		key := bakeCorner{vert: loop.Vert, uv: loop.UV, material: material}
		if idx, ok := lookup[key]; ok {
			return idx
		}
		idx := uint32(len(rm.Positions))
		rm.Positions = append(rm.Positions, m.Verts.Get(loop.Vert).Pos)
		rm.UV0 = append(rm.UV0, loop.UV)
		lookup[key] = idx
		return idx
	}

	for f := FaceID(0); f < m.Faces.Cap(); f++ {
		if !m.Faces.Alive(f) {
			continue
		}
		loops := m.FaceLoops(f)
		if loops == nil {
			continue
		}
		material := m.Faces.Get(f).Material

		switch len(loops) {
		case 3:
			byMaterial[material] = append(byMaterial[material],
				emit(loops[0], material), emit(loops[1], material), emit(loops[2], material))
		case 4:
			byMaterial[material] = append(byMaterial[material],
				emit(loops[0], material), emit(loops[1], material), emit(loops[2], material),
				emit(loops[0], material), emit(loops[2], material), emit(loops[3], material))
		default:
			// n-gon triangulation is a host concern.
		}
	}

	materials := make([]int, 0, len(byMaterial))
	for material := range byMaterial {
		materials = append(materials, material)
	}
	sort.Ints(materials)
	for _, material := range materials {
		rm.Submeshes = append(rm.Submeshes, Submesh{Material: material, Indices: byMaterial[material]})
	}
	return rm
}
