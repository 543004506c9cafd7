// Package asset imports 3D model files into flat triangle lists the painter
// can upload directly.
package asset

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/texture"
	"github.com/Faultbox/modelview/internal/logger"
)

// MaxTextures is the number of texture units the painter's shader samples.
const MaxTextures = 20

var (
	// ErrUnsupportedFormat is returned for file extensions no importer handles.
	ErrUnsupportedFormat = errors.New("unsupported model format")
	// ErrIncompleteScene is returned when a file parses but contains no triangles.
	ErrIncompleteScene = errors.New("model contains no renderable geometry")
)

// Vertex is one triangle corner: position, RGBA color and texture coordinate.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
	UV       [2]float32
}

// FloatsPerVertex is the interleaved size of a Vertex.
const FloatsPerVertex = 9

// Mesh is a non-indexed triangle list sharing one material.
type Mesh struct {
	Name         string
	Vertices     []Vertex
	TexturePaths []string // resolved, first texture of each material slot
}

// Texture is a decoded texture image.
type Texture struct {
	Path  string
	Image *image.RGBA
}

// Model is an imported file.
type Model struct {
	Path     string
	Meshes   []Mesh
	Textures []Texture
}

// VertexCount returns the total vertex count across all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Vertices)
	}
	return n
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Model) Bounds() (min, max mgl32.Vec3) {
	first := true
	for i := range m.Meshes {
		for _, v := range m.Meshes[i].Vertices {
			p := mgl32.Vec3(v.Position)
			if first {
				min, max = p, p
				first = false
				continue
			}
			for k := 0; k < 3; k++ {
				if p[k] < min[k] {
					min[k] = p[k]
				}
				if p[k] > max[k] {
					max[k] = p[k]
				}
			}
		}
	}
	return min, max
}

// Interleave flattens vertices to position(3) color(4) uv(2) floats.
func Interleave(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
		out = append(out, v.UV[:]...)
	}
	return out
}

// Options controls an import.
type Options struct {
	MaxTextures    int  // cap on decoded textures; 0 means MaxTextures
	MaxTextureSize int  // larger textures are downscaled; 0 disables
	SkipTextures   bool // geometry only
}

type importer func(path string) ([]Mesh, error)

var importers = map[string]importer{
	".obj": loadOBJ,
	".stl": loadSTL,
	".ply": loadPLY,
	".3ds": load3DS,
}

// Formats lists the file extensions Load understands.
func Formats() []string {
	return []string{".obj", ".stl", ".ply", ".3ds"}
}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	_, ok := importers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load imports a model file and decodes its textures. Texture failures
// are logged and skipped; geometry failures abort the import.
func Load(path string, opts Options) (*Model, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}

	load, ok := importers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}

	meshes, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}

	model := &Model{Path: path}
	for _, m := range meshes {
		if len(m.Vertices) > 0 {
			model.Meshes = append(model.Meshes, m)
		}
	}
	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrIncompleteScene)
	}

	if !opts.SkipTextures {
		model.Textures = loadTextures(model.Meshes, opts)
	}

	logger.Debug("model imported",
		zap.String("path", path),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("textures", len(model.Textures)))

	return model, nil
}

// loadTextures decodes each distinct texture path in mesh order, up to the cap.
func loadTextures(meshes []Mesh, opts Options) []Texture {
	limit := opts.MaxTextures
	if limit <= 0 || limit > MaxTextures {
		limit = MaxTextures
	}

	var out []Texture
	seen := make(map[string]bool)
	for _, m := range meshes {
		for _, p := range m.TexturePaths {
			if seen[p] {
				continue
			}
			seen[p] = true

			if len(out) == limit {
				logger.Warn("texture limit reached, skipping", zap.String("texture", p), zap.Int("limit", limit))
				continue
			}

			img, err := texture.Load(p, opts.MaxTextureSize)
			if err != nil {
				logger.Warn("failed to load texture", zap.String("texture", p), zap.Error(err))
				continue
			}
			out = append(out, Texture{Path: p, Image: img})
		}
	}
	return out
}
