package topo

import "github.com/polyforge/meshedit/pkg/math"

// Selection and deformation helpers. The editor overlay reads and writes
// element flags directly through the arenas; these cover the common
// whole-mesh operations so hosts don't reimplement the scans.

// SelectVertex sets or clears the vertex's selected flag. No-op on a dead id.
func (m *Mesh) SelectVertex(v VertexID, selected bool) {
	if !m.Verts.Alive(v) {
		return
	}
	vert := m.Verts.Get(v)
	if selected {
		vert.Flags = vert.Flags.Set(FlagSelected)
	} else {
		vert.Flags = vert.Flags.Clear(FlagSelected)
	}
}

// SelectAllVertices selects every live vertex.
func (m *Mesh) SelectAllVertices() {
	for v := VertexID(0); v < m.Verts.Cap(); v++ {
		if m.Verts.Alive(v) {
			vert := m.Verts.Get(v)
			vert.Flags = vert.Flags.Set(FlagSelected)
		}
	}
}

// ClearSelection clears the selected flag on every element table.
func (m *Mesh) ClearSelection() {
	for v := VertexID(0); v < m.Verts.Cap(); v++ {
		if m.Verts.Alive(v) {
			vert := m.Verts.Get(v)
			vert.Flags = vert.Flags.Clear(FlagSelected)
		}
	}
	for e := EdgeID(0); e < m.Edges.Cap(); e++ {
		if m.Edges.Alive(e) {
			edge := m.Edges.Get(e)
			edge.Flags = edge.Flags.Clear(FlagSelected)
		}
	}
	for f := FaceID(0); f < m.Faces.Cap(); f++ {
		if m.Faces.Alive(f) {
			face := m.Faces.Get(f)
			face.Flags = face.Flags.Clear(FlagSelected)
		}
	}
}

// SelectedVertices returns the ids of all selected live vertices in
// ascending order.
func (m *Mesh) SelectedVertices() []VertexID {
	var out []VertexID
	for v := VertexID(0); v < m.Verts.Cap(); v++ {
		if m.Verts.Alive(v) && m.Verts.Get(v).Flags.Has(FlagSelected) {
			out = append(out, v)
		}
	}
	return out
}

// TranslateSelected moves every selected vertex by delta.
func (m *Mesh) TranslateSelected(delta math.Vec3) {
	for v := VertexID(0); v < m.Verts.Cap(); v++ {
		if !m.Verts.Alive(v) {
			continue
		}
		vert := m.Verts.Get(v)
		if vert.Flags.Has(FlagSelected) {
			vert.Pos = vert.Pos.Add(delta)
		}
	}
}

// TransformSelected applies the matrix to every selected vertex position.
func (m *Mesh) TransformSelected(mat math.Mat4) {
	for v := VertexID(0); v < m.Verts.Cap(); v++ {
		if !m.Verts.Alive(v) {
			continue
		}
		vert := m.Verts.Get(v)
		if vert.Flags.Has(FlagSelected) {
			vert.Pos = mat.TransformPoint(vert.Pos)
		}
	}
}
