// Package formats provides readers and writers for mesh interchange formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/polyforge/meshedit/pkg/math"
	"github.com/polyforge/meshedit/pkg/topo"
)

// OBJ format errors.
var (
	ErrOBJBadVertex = errors.New("malformed OBJ vertex")
	ErrOBJBadFace   = errors.New("malformed OBJ face")
	ErrOBJBadIndex  = errors.New("OBJ face index out of range")
)

// OBJ holds the polygonal contents of a Wavefront OBJ file: shared position
// and texcoord pools plus faces grouped by material. Normals, smoothing
// groups and object/group names are skipped on read.
type OBJ struct {
	Positions []math.Vec3
	TexCoords []math.Vec2
	Groups    []OBJGroup
}

// OBJGroup collects the faces of one material. Material is the usemtl name,
// empty for faces before the first usemtl statement.
type OBJGroup struct {
	Material string
	Faces    [][]OBJCorner
}

// OBJCorner is one face corner: zero-based indices into the OBJ pools.
// Tex is -1 when the corner has no texcoord reference.
type OBJCorner struct {
	Pos int
	Tex int
}

// ParseOBJ parses Wavefront OBJ data. Faces keep their polygonal arity;
// indices (including negative relative ones) are resolved to zero-based
// absolute indices and validated against the pools parsed so far.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	group := -1 // current index into obj.Groups, -1 until first face/usemtl

	ensureGroup := func(material string) int {
		for i := range obj.Groups {
			if obj.Groups[i].Material == material {
				return i
			}
		}
		obj.Groups = append(obj.Groups, OBJGroup{Material: material})
		return len(obj.Groups) - 1
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJBadVertex)
			}
			var p math.Vec3
			if err := parseFloats(fields[1:4], &p.X, &p.Y, &p.Z); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJBadVertex)
			}
			obj.Positions = append(obj.Positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJBadVertex)
			}
			var uv math.Vec2
			if err := parseFloats(fields[1:3], &uv.X, &uv.Y); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJBadVertex)
			}
			obj.TexCoords = append(obj.TexCoords, uv)

		case "usemtl":
			material := ""
			if len(fields) > 1 {
				material = fields[1]
			}
			group = ensureGroup(material)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJBadFace)
			}
			face := make([]OBJCorner, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				corner, err := parseCorner(ref, len(obj.Positions), len(obj.TexCoords))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, corner)
			}
			if group < 0 {
				group = ensureGroup("")
			}
			obj.Groups[group].Faces = append(obj.Groups[group].Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseCorner resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference.
func parseCorner(ref string, numPos, numTex int) (OBJCorner, error) {
	parts := strings.Split(ref, "/")
	corner := OBJCorner{Tex: -1}

	pos, err := resolveIndex(parts[0], numPos)
	if err != nil {
		return corner, err
	}
	corner.Pos = pos

	if len(parts) > 1 && parts[1] != "" {
		tex, err := resolveIndex(parts[1], numTex)
		if err != nil {
			return corner, err
		}
		corner.Tex = tex
	}
	return corner, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index to a
// validated zero-based one.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 0, ErrOBJBadFace
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, ErrOBJBadIndex
	}
	return n, nil
}

func parseFloats(fields []string, out ...*float32) error {
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return err
		}
		*out[i] = float32(v)
	}
	return nil
}

// BuildMesh loads the OBJ contents into a fresh topology mesh, assigning
// dense material indices to usemtl names in first-use order. Faces with
// fewer than 3 corners are skipped. Returns the mesh and the material names
// by index (for writing back out).
func (o *OBJ) BuildMesh() (*topo.Mesh, []string) {
	m := topo.New()

	verts := make([]topo.VertexID, len(o.Positions))
	for i, p := range o.Positions {
		verts[i] = m.AddVertex(p)
	}

	var materials []string
	for _, group := range o.Groups {
		material := len(materials)
		materials = append(materials, group.Material)

		for _, face := range group.Faces {
			if len(face) < 3 {
				continue
			}
			faceVerts := make([]topo.VertexID, len(face))
			uvs := make([]math.Vec2, len(face))
			hasUV := false
			for i, corner := range face {
				faceVerts[i] = verts[corner.Pos]
				if corner.Tex >= 0 {
					uvs[i] = o.TexCoords[corner.Tex]
					hasUV = true
				}
			}
			if hasUV {
				_, _ = m.AddFaceUV(faceVerts, uvs, material)
			} else {
				_, _ = m.AddFace(faceVerts, material)
			}
		}
	}

	m.RebuildEdgeIndex()
	return m, materials
}

// WriteOBJ writes a triangulated render mesh as Wavefront OBJ. materials
// supplies usemtl names by material index; out-of-range or empty entries
// fall back to a generated "mat<N>" name.
func WriteOBJ(w io.Writer, rm *topo.RenderMesh, materials []string) error {
	bw := bufio.NewWriter(w)

	for _, p := range rm.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, uv := range rm.UV0 {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}

	hasUV := len(rm.UV0) == len(rm.Positions) && len(rm.UV0) > 0
	for _, sub := range rm.Submeshes {
		name := ""
		if sub.Material >= 0 && sub.Material < len(materials) {
			name = materials[sub.Material]
		}
		if name == "" {
			name = fmt.Sprintf("mat%d", sub.Material)
		}
		fmt.Fprintf(bw, "usemtl %s\n", name)

		for i := 0; i+2 < len(sub.Indices); i += 3 {
			a, b, c := sub.Indices[i]+1, sub.Indices[i+1]+1, sub.Indices[i+2]+1
			if hasUV {
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}
	}
	return bw.Flush()
}
