// meshedit is a CLI utility for inspecting and rebaking polygon meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/polyforge/meshedit/internal/config"
	"github.com/polyforge/meshedit/internal/logger"
	"github.com/polyforge/meshedit/pkg/formats"
	"github.com/polyforge/meshedit/pkg/topo"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	config.ParseFlags(os.Args[2:])
	args := flag.Args()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "bake":
		cmdBake(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshedit - polygon mesh inspection and rebaking utility

Usage:
  meshedit <command> [options] <files>

Commands:
  info <in.obj>            Show topology statistics for a mesh
  bake <in.obj> <out.obj>  Rebake a mesh through the topology kernel

Options:
  -config <path>           Explicit config file
  -debug                   Debug logging
  -logfile <path>          Write logs to file
  -weld                    Weld coincident vertices when rebaking
  -weld-epsilon <d>        Weld merge distance

Examples:
  meshedit info model.obj
  meshedit bake -weld model.obj model_baked.obj`)
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshedit info <in.obj>")
		os.Exit(1)
	}

	m, materials, err := loadMesh(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	verts, edges, faces, loops := m.Counts()
	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", verts)
	fmt.Printf("Edges:     %d\n", edges)
	fmt.Printf("Faces:     %d\n", faces)
	fmt.Printf("Corners:   %d\n", loops)
	fmt.Printf("Materials: %d\n", len(materials))

	// Classify edges by how many faces use them.
	var wire, boundary, manifold, nonManifold int
	for e := topo.EdgeID(0); e < m.Edges.Cap(); e++ {
		if !m.Edges.Alive(e) {
			continue
		}
		switch m.EdgeFaceCount(e) {
		case 0:
			wire++
		case 1:
			boundary++
		case 2:
			manifold++
		default:
			nonManifold++
		}
	}
	fmt.Println()
	fmt.Printf("Wire edges:         %d\n", wire)
	fmt.Printf("Boundary edges:     %d\n", boundary)
	fmt.Printf("Manifold edges:     %d\n", manifold)
	fmt.Printf("Non-manifold edges: %d\n", nonManifold)

	rm := m.BakeToRenderMesh()
	fmt.Println()
	fmt.Printf("Baked triangles:       %d\n", rm.TriangleCount())
	fmt.Printf("Baked render vertices: %d\n", len(rm.Positions))
}

func cmdBake(cfg *config.Config, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshedit bake <in.obj> <out.obj>")
		os.Exit(1)
	}

	m, materials, err := loadMesh(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rm := m.BakeToRenderMesh()
	logger.Sugar.Infow("baked mesh",
		"triangles", rm.TriangleCount(),
		"vertices", len(rm.Positions))

	if cfg.Import.Weld {
		before := len(rm.Positions)
		rm.Weld(cfg.Import.WeldEpsilon)
		welded := topo.New()
		welded.LoadFromRenderMesh(rm)
		rm = welded.BakeToRenderMesh()
		logger.Sugar.Infow("welded mesh",
			"before", before, "after", len(rm.Positions))
	}

	out, err := os.Create(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := formats.WriteOBJ(out, rm, materials); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: %d triangles, %d vertices\n",
		args[1], rm.TriangleCount(), len(rm.Positions))
}

// loadMesh parses an OBJ file and loads it into a topology mesh.
func loadMesh(cfg *config.Config, path string) (*topo.Mesh, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Import.FlipV {
		for i := range obj.TexCoords {
			obj.TexCoords[i].Y = 1 - obj.TexCoords[i].Y
		}
	}
	m, materials := obj.BuildMesh()
	logger.Sugar.Debugw("loaded mesh",
		"path", path,
		"vertices", m.Verts.Len(),
		"faces", m.Faces.Len())
	return m, materials, nil
}
