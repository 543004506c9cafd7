package asset

import (
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
}

const quadOBJ = `# two objects, one quad and one triangle
mtllib scene.mtl
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
o quad
usemtl red
f 1/1 2/2 3/3 4/4
o tri
usemtl tex
f 1/1 2/2 3/3
`

const sceneMTL = `newmtl red
Kd 1 0 0

newmtl tex
Kd 1 1 1
map_Kd textures\checker.png
`

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.obj", quadOBJ)
	writeFile(t, dir, "scene.mtl", sceneMTL)
	os.Mkdir(filepath.Join(dir, "textures"), 0755)
	writePNG(t, filepath.Join(dir, "textures"), "checker.png")

	m, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(m.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(m.Meshes))
	}

	// Quad fans into two triangles.
	if got := len(m.Meshes[0].Vertices); got != 6 {
		t.Errorf("quad vertices: got %d, want 6", got)
	}
	if got := len(m.Meshes[1].Vertices); got != 3 {
		t.Errorf("triangle vertices: got %d, want 3", got)
	}

	sum := 0
	for _, mesh := range m.Meshes {
		sum += len(mesh.Vertices)
	}
	if m.VertexCount() != sum {
		t.Errorf("VertexCount %d != sum of meshes %d", m.VertexCount(), sum)
	}

	if c := m.Meshes[0].Vertices[0].Color; c != [4]float32{1, 0, 0, 1} {
		t.Errorf("quad color: got %v, want red from Kd", c)
	}

	// vt 0 0 is the bottom-left; flipped for top-down image rows.
	if uv := m.Meshes[0].Vertices[0].UV; uv != [2]float32{0, 1} {
		t.Errorf("uv: got %v, want (0, 1)", uv)
	}

	if len(m.Textures) != 1 {
		t.Fatalf("expected 1 texture, got %d", len(m.Textures))
	}
	want := filepath.Join(dir, "textures", "checker.png")
	if m.Textures[0].Path != want {
		t.Errorf("texture path: got %s, want %s", m.Textures[0].Path, want)
	}
}

func TestLoadOBJWithoutMaterials(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", "o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	m, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Errorf("vertex count: got %d, want 3", m.VertexCount())
	}
	if c := m.Meshes[0].Vertices[0].Color; c != white {
		t.Errorf("color without material: got %v, want white", c)
	}
	if len(m.Textures) != 0 {
		t.Errorf("expected no textures, got %d", len(m.Textures))
	}
}

func TestLoadOBJColorFallsBackToWhite(t *testing.T) {
	const tri = "v 0 0 0\nv 1 0 0\nv 0 1 0\n"

	t.Run("missing library", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "skin.obj", "mtllib gone.mtl\n"+tri+"usemtl skin\nf 1 2 3\n")

		m, err := Load(path, Options{})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if c := m.Meshes[0].Vertices[0].Color; c != white {
			t.Errorf("color: got %v, want white", c)
		}
	})

	t.Run("textured without Kd", func(t *testing.T) {
		dir := t.TempDir()
		writePNG(t, dir, "c.png")
		writeFile(t, dir, "tex.mtl", "newmtl tex\nmap_Kd c.png\n")
		path := writeFile(t, dir, "tex.obj", "mtllib tex.mtl\n"+tri+"usemtl tex\nf 1 2 3\n")

		m, err := Load(path, Options{})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if c := m.Meshes[0].Vertices[0].Color; c != white {
			t.Errorf("color: got %v, want white", c)
		}
		if len(m.Textures) != 1 {
			t.Errorf("expected 1 texture, got %d", len(m.Textures))
		}
	})

	t.Run("undeclared material", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "mix.mtl", "newmtl red\nKd 1 0 0\n")
		path := writeFile(t, dir, "mix.obj", "mtllib mix.mtl\n"+tri+"usemtl blue\nf 1 2 3\n")

		m, err := Load(path, Options{})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if c := m.Meshes[0].Vertices[0].Color; c != white {
			t.Errorf("color: got %v, want white", c)
		}
	})
}

func TestLoadMissingTextureSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.obj", quadOBJ)
	writeFile(t, dir, "scene.mtl", sceneMTL)

	m, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("missing texture should not fail the import: %v", err)
	}
	if len(m.Textures) != 0 {
		t.Errorf("expected missing texture to be skipped, got %d", len(m.Textures))
	}
	if len(m.Meshes[1].TexturePaths) != 1 {
		t.Errorf("texture path should still be recorded on the mesh")
	}
}

func TestLoadTextureLimit(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png")
	writePNG(t, dir, "b.png")
	writeFile(t, dir, "two.mtl", "newmtl a\nKd 1 1 1\nmap_Kd a.png\nnewmtl b\nKd 1 1 1\nmap_Kd b.png\n")
	path := writeFile(t, dir, "two.obj", `mtllib two.mtl
o two
v 0 0 0
v 1 0 0
v 0 1 0
usemtl a
f 1 2 3
usemtl b
f 1 2 3
`)

	m, err := Load(path, Options{MaxTextures: 1})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Textures) != 1 {
		t.Errorf("expected texture cap of 1, got %d", len(m.Textures))
	}

	m, err = Load(path, Options{SkipTextures: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Textures) != 0 {
		t.Errorf("SkipTextures: got %d textures", len(m.Textures))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	unsupported := writeFile(t, dir, "model.fbx", "binary")
	empty := writeFile(t, dir, "empty.obj", "v 0 0 0\nv 1 0 0\n")
	badIndex := writeFile(t, dir, "bad.obj", "o bad\nv 0 0 0\nf 1 2 3\n")

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"missing file", filepath.Join(dir, "nope.obj"), fs.ErrNotExist},
		{"unsupported format", unsupported, ErrUnsupportedFormat},
		{"no faces", empty, ErrIncompleteScene},
		{"index out of range", badIndex, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(tt.path, Options{})
			if err == nil {
				t.Fatalf("expected error, got model with %d vertices", m.VertexCount())
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v is not %v", err, tt.target)
			}
		})
	}
}

func TestLoadSTL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.stl", `solid tri
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid tri
`)

	m, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Errorf("vertex count: got %d, want 3", m.VertexCount())
	}
	if m.Meshes[0].Name != "tri" {
		t.Errorf("mesh name: got %q", m.Meshes[0].Name)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.obj", true},
		{"A.OBJ", true},
		{"b.stl", true},
		{"c.ply", true},
		{"d.3ds", true},
		{"e.fbx", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCube(t *testing.T) {
	c := Cube()
	if c.VertexCount() != 36 {
		t.Errorf("cube vertices: got %d, want 36", c.VertexCount())
	}

	min, max := c.Bounds()
	for k := 0; k < 3; k++ {
		if min[k] != -0.5 || max[k] != 0.5 {
			t.Errorf("bounds axis %d: got [%f, %f]", k, min[k], max[k])
		}
	}

	// Returned copies are independent.
	c.Meshes[0].Vertices[0].Position[0] = 9
	if Cube().Meshes[0].Vertices[0].Position[0] != -0.5 {
		t.Error("Cube shares vertex storage between calls")
	}
}

func TestInterleave(t *testing.T) {
	v := []Vertex{{
		Position: [3]float32{1, 2, 3},
		Color:    [4]float32{4, 5, 6, 7},
		UV:       [2]float32{8, 9},
	}}
	got := Interleave(v)
	if len(got) != FloatsPerVertex {
		t.Fatalf("length: got %d, want %d", len(got), FloatsPerVertex)
	}
	for i, f := range got {
		if f != float32(i+1) {
			t.Errorf("element %d: got %f, want %d", i, f, i+1)
		}
	}
}

func TestToFauxMesh(t *testing.T) {
	m := ToFauxMesh(Cube())
	if len(m.Triangles) != 12 {
		t.Errorf("triangles: got %d, want 12", len(m.Triangles))
	}
}
