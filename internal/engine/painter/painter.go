// Package painter draws the current scene: the built-in cube or an imported
// model, spinning about a fixed axis in front of the fly camera.
package painter

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/asset"
	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/painter/shaders"
	"github.com/Faultbox/modelview/internal/logger"
)

// MaxTextures is the number of sampler slots in the scene shader.
const MaxTextures = asset.MaxTextures

// Options configures the model spin.
type Options struct {
	RotationStep float32 // radians added per Draw
	RotationAxis mgl32.Vec3
}

// DefaultOptions returns the standard spin.
func DefaultOptions() Options {
	return Options{
		RotationStep: 0.005,
		RotationAxis: mgl32.Vec3{1, 0.5, 0},
	}
}

type drawMesh struct {
	name     string
	gpu      GPUMesh
	vertices int
}

// Painter owns the scene program, mesh buffers and textures.
type Painter struct {
	dev    Device
	camera *camera.FlyCamera

	program  uint32
	meshes   []drawMesh
	textures []uint32

	modelPath   string
	vertexCount int

	frames uint64
	step   float32
	axis   mgl32.Vec3
}

// New creates a painter. Call Init once a GL context is current.
func New(dev Device, cam *camera.FlyCamera, opts Options) *Painter {
	axis := opts.RotationAxis
	if axis.Len() == 0 {
		axis = DefaultOptions().RotationAxis
	}
	return &Painter{
		dev:    dev,
		camera: cam,
		step:   opts.RotationStep,
		axis:   axis.Normalize(),
	}
}

// Init compiles the scene program and uploads the cube. A shader that fails
// to build is logged and left unset; Draw then only advances the rotation.
func (p *Painter) Init() {
	program, err := p.dev.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		logger.Error("scene shader failed", zap.Error(err))
	} else {
		p.program = program
		logger.Debug("scene shader ready", zap.Uint32("program", program))
	}

	if err := p.ShowCube(); err != nil {
		logger.Error("failed to upload cube", zap.Error(err))
	}
}

// ShowCube replaces the current model with the built-in cube.
func (p *Painter) ShowCube() error {
	return p.LoadModel(asset.Cube())
}

// LoadModel uploads a model's meshes and textures. On failure everything
// uploaded so far is released and the previous model stays on screen.
// On success the previous model's GPU resources are released.
func (p *Painter) LoadModel(m *asset.Model) error {
	meshes := make([]drawMesh, 0, len(m.Meshes))
	var textures []uint32

	rollback := func() {
		for _, dm := range meshes {
			p.dev.DeleteMesh(dm.gpu)
		}
		for _, id := range textures {
			p.dev.DeleteTexture(id)
		}
	}

	total := 0
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		gpu, err := p.dev.UploadMesh(asset.Interleave(mesh.Vertices))
		if err != nil {
			rollback()
			return fmt.Errorf("uploading mesh %q: %w", mesh.Name, err)
		}
		meshes = append(meshes, drawMesh{name: mesh.Name, gpu: gpu, vertices: len(mesh.Vertices)})
		total += len(mesh.Vertices)
	}

	for _, tex := range m.Textures {
		if len(textures) == MaxTextures {
			logger.Warn("texture slots full, ignoring texture", zap.String("texture", tex.Path))
			continue
		}
		id, err := p.dev.UploadTexture(tex.Image)
		if err != nil {
			rollback()
			return fmt.Errorf("uploading texture %s: %w", tex.Path, err)
		}
		textures = append(textures, id)
	}

	p.releaseModel()
	p.meshes = meshes
	p.textures = textures
	p.vertexCount = total
	p.modelPath = m.Path

	logger.Info("model ready",
		zap.String("path", m.Path),
		zap.Int("meshes", len(meshes)),
		zap.Int("vertices", total),
		zap.Int("textures", len(textures)))
	return nil
}

// Draw renders one frame and advances the rotation by one step.
func (p *Painter) Draw() {
	p.frames++
	if p.program == 0 {
		return
	}

	p.dev.EnableDepthTest()
	p.dev.UseProgram(p.program)

	p.dev.SetInt("numTextures", int32(len(p.textures)))
	for i, id := range p.textures {
		p.dev.BindTexture(i, id)
		p.dev.SetInt(fmt.Sprintf("textures[%d]", i), int32(i))
	}

	p.dev.SetMat4("model", p.ModelMatrix())
	p.dev.SetMat4("view", p.camera.ViewMatrix())
	p.dev.SetMat4("projection", p.camera.ProjectionMatrix())

	for _, m := range p.meshes {
		p.dev.DrawMesh(m.gpu)
	}

	p.dev.UseProgram(0)
}

// ModelMatrix returns the current spin transform.
func (p *Painter) ModelMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3D(p.Angle(), p.axis)
}

// Release deletes the program and all model resources.
func (p *Painter) Release() {
	p.releaseModel()
	p.meshes = nil
	p.textures = nil
	p.vertexCount = 0
	if p.program != 0 {
		p.dev.UseProgram(0)
		p.dev.DeleteProgram(p.program)
		p.program = 0
	}
}

func (p *Painter) releaseModel() {
	for _, m := range p.meshes {
		p.dev.DeleteMesh(m.gpu)
	}
	for _, id := range p.textures {
		p.dev.DeleteTexture(id)
	}
}

// Angle returns the accumulated rotation in radians. It is computed from
// the frame count so it carries no summation drift.
func (p *Painter) Angle() float32 {
	return float32(float64(p.frames) * float64(p.step))
}

// Frames returns the number of Draw calls so far.
func (p *Painter) Frames() uint64 { return p.frames }

// VertexCount returns the vertices drawn per frame.
func (p *Painter) VertexCount() int { return p.vertexCount }

// MeshCount returns the draw calls issued per frame.
func (p *Painter) MeshCount() int { return len(p.meshes) }

// TextureCount returns the number of bound textures.
func (p *Painter) TextureCount() int { return len(p.textures) }

// ModelPath returns the source file of the current model, or "" for the cube.
func (p *Painter) ModelPath() string { return p.modelPath }

// Ready reports whether the scene program compiled.
func (p *Painter) Ready() bool { return p.program != 0 }
