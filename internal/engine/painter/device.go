package painter

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUMesh is an uploaded vertex buffer.
type GPUMesh struct {
	VAO   uint32
	VBO   uint32
	Count int32
}

// Device is the subset of the graphics API the painter drives.
// Uniform setters apply to the program last passed to UseProgram.
type Device interface {
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	SetMat4(name string, m mgl32.Mat4)
	SetInt(name string, v int32)

	// UploadMesh uploads interleaved position(3) color(4) uv(2) floats.
	UploadMesh(vertices []float32) (GPUMesh, error)
	DeleteMesh(m GPUMesh)
	DrawMesh(m GPUMesh)

	UploadTexture(img *image.RGBA) (uint32, error)
	DeleteTexture(id uint32)
	BindTexture(unit int, id uint32)

	EnableDepthTest()
}
