package asset

import (
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
)

func loadSTL(path string) ([]Mesh, error) { return loadFaux(path, fauxgl.LoadSTL) }
func loadPLY(path string) ([]Mesh, error) { return loadFaux(path, fauxgl.LoadPLY) }
func load3DS(path string) ([]Mesh, error) { return loadFaux(path, fauxgl.Load3DS) }

// loadFaux imports a single-mesh format through fauxgl. These formats carry
// no materials, so the result is one untextured mesh.
func loadFaux(path string, load func(string) (*fauxgl.Mesh, error)) ([]Mesh, error) {
	fm, err := load(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := Mesh{Name: name, Vertices: make([]Vertex, 0, 3*len(fm.Triangles))}
	for _, t := range fm.Triangles {
		m.Vertices = append(m.Vertices, fauxVertex(t.V1), fauxVertex(t.V2), fauxVertex(t.V3))
	}
	return []Mesh{m}, nil
}

func fauxVertex(v fauxgl.Vertex) Vertex {
	c := white
	if v.Color.A > 0 {
		c = [4]float32{float32(v.Color.R), float32(v.Color.G), float32(v.Color.B), float32(v.Color.A)}
	}
	return Vertex{
		Position: [3]float32{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)},
		Color:    c,
		UV:       [2]float32{float32(v.Texture.X), 1 - float32(v.Texture.Y)},
	}
}

// ToFauxMesh converts a model to a fauxgl mesh for software rendering.
func ToFauxMesh(m *Model) *fauxgl.Mesh {
	var tris []*fauxgl.Triangle
	for i := range m.Meshes {
		vs := m.Meshes[i].Vertices
		for j := 0; j+2 < len(vs); j += 3 {
			tris = append(tris, fauxgl.NewTriangleForPoints(toVector(vs[j]), toVector(vs[j+1]), toVector(vs[j+2])))
		}
	}
	return fauxgl.NewTriangleMesh(tris)
}

func toVector(v Vertex) fauxgl.Vector {
	return fauxgl.V(float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2]))
}
