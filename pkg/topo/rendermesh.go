package topo

import "github.com/polyforge/meshedit/pkg/math"

// RenderMesh is the flat, renderer-facing mesh form: one position (and
// optional UV) per render vertex plus per-material triangle index lists.
// Corners that differ in UV or material occupy distinct render vertices,
// matching the GPU vertex model.
type RenderMesh struct {
	Positions []math.Vec3

	// UV0 is the first UV channel. Either empty or the same length as
	// Positions; any other length is ignored on import.
	UV0 []math.Vec2

	Submeshes []Submesh
}

// Submesh is one material's triangle list. Indices come in consecutive
// triples into Positions/UV0.
type Submesh struct {
	Material int
	Indices  []uint32
}

// TriangleCount returns the total triangle count across all submeshes.
func (rm *RenderMesh) TriangleCount() int {
	n := 0
	for _, sub := range rm.Submeshes {
		n += len(sub.Indices) / 3
	}
	return n
}

// Weld merges render vertices whose positions coincide within epsilon and
// whose UVs match exactly, rewriting the index lists in place. Importing
// never merges vertices on its own, so callers that want shared topology
// across seams run this before LoadFromRenderMesh.
func (rm *RenderMesh) Weld(epsilon float32) {
	if epsilon <= 0 || len(rm.Positions) == 0 {
		return
	}
	hasUV := len(rm.UV0) == len(rm.Positions)

	type weldKey struct {
		qx, qy, qz int32
		uv         math.Vec2
	}

	// Quantize positions so coincident vertices land on one key.
	first := make(map[weldKey]uint32, len(rm.Positions))
	remap := make([]uint32, len(rm.Positions))
	var positions []math.Vec3
	var uvs []math.Vec2

	for i, p := range rm.Positions {
		key := weldKey{
			qx: int32(p.X / epsilon),
			qy: int32(p.Y / epsilon),
			qz: int32(p.Z / epsilon),
		}
		if hasUV {
			key.uv = rm.UV0[i]
		}
		if idx, ok := first[key]; ok {
			remap[i] = idx
			continue
		}
		idx := uint32(len(positions))
		positions = append(positions, p)
		if hasUV {
			uvs = append(uvs, rm.UV0[i])
		}
		first[key] = idx
		remap[i] = idx
	}

	for si := range rm.Submeshes {
		indices := rm.Submeshes[si].Indices
		for ii, idx := range indices {
			if int(idx) < len(remap) {
				indices[ii] = remap[idx]
			}
		}
	}
	rm.Positions = positions
	if hasUV {
		rm.UV0 = uvs
	}
}
