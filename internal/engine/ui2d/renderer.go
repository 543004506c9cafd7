// Package ui2d is a small immediate-mode GUI drawn with OpenGL: panels,
// buttons and labels batched into two draw calls per frame.
package ui2d

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/shader"
)

const (
	solidFloats = 7 // pos3 + color4
	textFloats  = 9 // pos3 + uv2 + color4
)

const solidVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;
uniform mat4 uProjection;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}`

const solidFragmentShader = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vColor;
}`

const textVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vTexCoord;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}`

const textFragmentShader = `#version 410 core
uniform sampler2D uTexture;
in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;
void main() {
	float alpha = texture(uTexture, vTexCoord).a;
	FragColor = vec4(vColor.rgb, vColor.a * alpha);
}`

// Renderer batches 2D quads and text for one frame.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solid *shader.Program
	text  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32

	solidVertices []float32
	textVertices  []float32

	font *Font
}

// New creates a renderer. Requires a current GL context.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:   width,
		screenHeight:  height,
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
	}

	var err error
	if r.solid, err = shader.NewProgram(solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	if r.text, err = shader.NewProgram(textVertexShader, textFragmentShader); err != nil {
		r.solid.Delete()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	r.solidVAO, r.solidVBO = newQuadBuffers([]int32{3, 4})
	r.textVAO, r.textVBO = newQuadBuffers([]int32{3, 2, 4})
	r.font = NewFont()

	return r, nil
}

// newQuadBuffers creates a VAO/VBO pair with tightly packed float
// attributes of the given sizes at locations 0..n-1.
func newQuadBuffers(sizes []int32) (vao, vbo uint32) {
	var stride int32
	for _, s := range sizes {
		stride += s * 4
	}

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	var offset uintptr
	for i, s := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), s, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(s * 4)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// GetScreenSize returns the current screen dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
}

// End flushes the queued quads, then text on top.
func (r *Renderer) End() {
	var prevBlend, prevDepth int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	proj := mgl32.Ortho(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	if len(r.solidVertices) > 0 {
		r.solid.Use()
		r.solid.SetMat4("uProjection", proj)
		flush(r.solidVAO, r.solidVBO, r.solidVertices, solidFloats)
	}

	if len(r.textVertices) > 0 && r.font != nil {
		r.text.Use()
		r.text.SetMat4("uProjection", proj)
		r.text.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.font.TextureID())
		flush(r.textVAO, r.textVBO, r.textVertices, textFloats)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

func flush(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.font != nil {
		r.font.Close()
	}
	for _, vao := range []*uint32{&r.solidVAO, &r.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, vbo := range []*uint32{&r.solidVBO, &r.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if r.solid != nil {
		r.solid.Delete()
	}
	if r.text != nil {
		r.text.Delete()
	}
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.addQuad(x, y, width, height, color)
}

// DrawRectOutline draws a rectangle outline.
func (r *Renderer) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	r.addQuad(x, y, width, thickness, color)
	r.addQuad(x, y+height-thickness, width, thickness, color)
	r.addQuad(x, y+thickness, thickness, height-thickness*2, color)
	r.addQuad(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawPanel draws a panel with a 1px border.
func (r *Renderer) DrawPanel(x, y, width, height float32, bg, border Color) {
	r.DrawRect(x, y, width, height, bg)
	r.DrawRectOutline(x, y, width, height, 1, border)
}

func (r *Renderer) addQuad(x, y, w, h float32, c Color) {
	r.solidVertices = append(r.solidVertices,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

func (r *Renderer) addTexturedQuad(x, y, w, h, u0, v0, u1, v1 float32, c Color) {
	r.textVertices = append(r.textVertices,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// DrawText draws text with its top-left corner at (x, y).
func (r *Renderer) DrawText(x, y float32, text string, scale float32, color Color) {
	if r.font == nil {
		return
	}

	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, ch := range text {
		if ch == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := r.font.GetGlyphUV(ch)
		r.addTexturedQuad(curX, y, charW, charH, u0, v0, u1, v1, color)
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	if r.font == nil {
		return 0, 0
	}
	return r.font.MeasureText(text, scale)
}
