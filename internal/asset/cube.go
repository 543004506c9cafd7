package asset

// Unit cube centered at the origin: 6 faces, 2 triangles each, with a
// distinct color per corner.
var cubeVertices = [36]Vertex{
	// -Z
	{[3]float32{-0.5, -0.5, -0.5}, [4]float32{0, 0, 0, 1}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, -0.5}, [4]float32{1, 0, 0, 1}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, -0.5}, [4]float32{0, 1, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, -0.5}, [4]float32{0, 1, 0, 1}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, -0.5}, [4]float32{0, 0, 1, 1}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [4]float32{0, 0, 0, 1}, [2]float32{0, 0}},
	// +Z
	{[3]float32{-0.5, -0.5, 0.5}, [4]float32{0, 1, 1, 1}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, 0.5}, [4]float32{1, 1, 0, 1}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [4]float32{1, 1, 1, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0.5}, [4]float32{1, 1, 1, 1}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, 0.5}, [4]float32{1, 0, 1, 1}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0.5}, [4]float32{0, 1, 1, 1}, [2]float32{0, 0}},
	// -X
	{[3]float32{-0.5, 0.5, 0.5}, [4]float32{1, 0, 1, 1}, [2]float32{1, 0}},
	{[3]float32{-0.5, 0.5, -0.5}, [4]float32{0, 0, 1, 1}, [2]float32{1, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [4]float32{0, 0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [4]float32{0, 0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0.5}, [4]float32{0, 1, 1, 1}, [2]float32{0, 0}},
	{[3]float32{-0.5, 0.5, 0.5}, [4]float32{1, 0, 1, 1}, [2]float32{1, 0}},
	// +X
	{[3]float32{0.5, 0.5, 0.5}, [4]float32{1, 1, 1, 1}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, -0.5}, [4]float32{0, 1, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [4]float32{1, 0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [4]float32{1, 0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, 0.5}, [4]float32{1, 1, 0, 1}, [2]float32{0, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [4]float32{1, 1, 1, 1}, [2]float32{1, 0}},
	// -Y
	{[3]float32{-0.5, -0.5, -0.5}, [4]float32{0, 0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [4]float32{1, 0, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, -0.5, 0.5}, [4]float32{1, 1, 0, 1}, [2]float32{1, 0}},
	{[3]float32{0.5, -0.5, 0.5}, [4]float32{1, 1, 0, 1}, [2]float32{1, 0}},
	{[3]float32{-0.5, -0.5, 0.5}, [4]float32{0, 1, 1, 1}, [2]float32{0, 0}},
	{[3]float32{-0.5, -0.5, -0.5}, [4]float32{0, 0, 0, 1}, [2]float32{0, 1}},
	// +Y
	{[3]float32{-0.5, 0.5, -0.5}, [4]float32{0, 0, 1, 1}, [2]float32{0, 1}},
	{[3]float32{0.5, 0.5, -0.5}, [4]float32{0, 1, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0.5}, [4]float32{1, 1, 1, 1}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [4]float32{1, 1, 1, 1}, [2]float32{1, 0}},
	{[3]float32{-0.5, 0.5, 0.5}, [4]float32{1, 0, 1, 1}, [2]float32{0, 0}},
	{[3]float32{-0.5, 0.5, -0.5}, [4]float32{0, 0, 1, 1}, [2]float32{0, 1}},
}

// Cube returns the built-in 36-vertex colored cube.
func Cube() *Model {
	verts := make([]Vertex, len(cubeVertices))
	copy(verts, cubeVertices[:])
	return &Model{
		Path:   "",
		Meshes: []Mesh{{Name: "cube", Vertices: verts}},
	}
}
