// Package renderer provides the OpenGL implementation of the painter device.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/asset"
	"github.com/Faultbox/modelview/internal/engine/painter"
	"github.com/Faultbox/modelview/internal/engine/shader"
	"github.com/Faultbox/modelview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer owns global GL state and implements painter.Device.
type Renderer struct {
	config Config

	programs map[uint32]*shader.Program
	current  *shader.Program
}

var _ painter.Device = (*Renderer)(nil)

// New loads GL function pointers and sets default state.
// Must be called after a GL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	r := &Renderer{
		config:   cfg,
		programs: make(map[uint32]*shader.Program),
	}

	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the color and depth buffers.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Close deletes every program still owned by the renderer.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for id, p := range r.programs {
		p.Delete()
		delete(r.programs, id)
	}
	r.current = nil
}

// CompileProgram builds a program and tracks it for uniform lookups.
func (r *Renderer) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	p, err := shader.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	r.programs[p.ID] = p
	return p.ID, nil
}

// DeleteProgram deletes a program created by CompileProgram.
func (r *Renderer) DeleteProgram(id uint32) {
	p, ok := r.programs[id]
	if !ok {
		return
	}
	if r.current == p {
		r.current = nil
	}
	p.Delete()
	delete(r.programs, id)
}

// UseProgram binds a program; 0 unbinds.
func (r *Renderer) UseProgram(id uint32) {
	r.current = r.programs[id]
	gl.UseProgram(id)
}

// SetMat4 sets a matrix uniform on the bound program.
func (r *Renderer) SetMat4(name string, m mgl32.Mat4) {
	if r.current != nil {
		r.current.SetMat4(name, m)
	}
}

// SetInt sets an integer uniform on the bound program.
func (r *Renderer) SetInt(name string, v int32) {
	if r.current != nil {
		r.current.SetInt(name, v)
	}
}

// EnableDepthTest turns on depth testing.
func (r *Renderer) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

// UploadMesh creates a VAO/VBO for interleaved position/color/uv vertices.
func (r *Renderer) UploadMesh(vertices []float32) (painter.GPUMesh, error) {
	if len(vertices) == 0 || len(vertices)%asset.FloatsPerVertex != 0 {
		return painter.GPUMesh{}, fmt.Errorf("vertex data length %d is not a multiple of %d", len(vertices), asset.FloatsPerVertex)
	}

	var m painter.GPUMesh
	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)
	if m.VAO == 0 || m.VBO == 0 {
		r.DeleteMesh(m)
		return painter.GPUMesh{}, errors.New("failed to allocate vertex buffers")
	}

	gl.BindVertexArray(m.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	const stride = asset.FloatsPerVertex * 4
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 7*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.DeleteMesh(m)
		return painter.GPUMesh{}, fmt.Errorf("buffer upload failed: GL error 0x%x", code)
	}

	m.Count = int32(len(vertices) / asset.FloatsPerVertex)
	return m, nil
}

// DeleteMesh frees a mesh's buffers.
func (r *Renderer) DeleteMesh(m painter.GPUMesh) {
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
}

// DrawMesh issues a non-indexed triangle draw.
func (r *Renderer) DrawMesh(m painter.GPUMesh) {
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.Count)
	gl.BindVertexArray(0)
}

// UploadTexture creates a mipmapped, repeating RGBA texture.
func (r *Renderer) UploadTexture(img *image.RGBA) (uint32, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, errors.New("empty texture image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("texture upload failed: GL error 0x%x", code)
	}
	return id, nil
}

// DeleteTexture frees a texture.
func (r *Renderer) DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

// BindTexture binds a texture to a texture unit.
func (r *Renderer) BindTexture(unit int, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
}
