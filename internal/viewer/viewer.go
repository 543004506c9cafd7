// Package viewer holds the application state shared by the SDL and ImGui
// frontends: camera, painter, mouse capture and model selection.
package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/asset"
	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/painter"
	"github.com/Faultbox/modelview/internal/logger"
)

// Loader imports a model file.
type Loader func(path string, opts asset.Options) (*asset.Model, error)

// Viewer is the frontend-independent application state. All methods must
// be called from the render thread.
type Viewer struct {
	cfg     *config.Config
	camera  *camera.FlyCamera
	painter *painter.Painter
	load    Loader

	captured bool
	status   string
}

// New builds the camera and painter from config.
func New(cfg *config.Config, dev painter.Device) *Viewer {
	cc := cfg.Camera
	cam := camera.NewFlyCamera(mgl32.Vec3(cc.Position), cc.Speed)
	cam.Sensitivity = cc.Sensitivity
	cam.FOV = cc.FOV
	cam.Near = cc.Near
	cam.Far = cc.Far
	cam.ProcessResize(cfg.Graphics.Width, cfg.Graphics.Height)

	p := painter.New(dev, cam, painter.Options{
		RotationStep: cfg.Viewer.RotationStep,
		RotationAxis: mgl32.Vec3(cfg.Viewer.RotationAxis),
	})

	return &Viewer{
		cfg:     cfg,
		camera:  cam,
		painter: p,
		load:    asset.Load,
		status:  "Showing cube",
	}
}

// WithLoader replaces the model importer, mainly for tests.
func (v *Viewer) WithLoader(l Loader) *Viewer {
	v.load = l
	return v
}

// Init prepares GPU resources and opens the configured initial model.
// A failing initial model is logged and the cube stays up.
func (v *Viewer) Init() {
	v.painter.Init()
	if path := v.cfg.Viewer.InitialModel; path != "" {
		_ = v.OpenModel(path)
	}
}

// OpenModel imports and displays a model. On any failure the error is
// logged and returned and the current scene is left as it was.
func (v *Viewer) OpenModel(path string) error {
	m, err := v.load(path, asset.Options{
		MaxTextures:    painter.MaxTextures,
		MaxTextureSize: v.cfg.Viewer.MaxTextureSize,
	})
	if err != nil {
		logger.Error("failed to load model", zap.String("path", path), zap.Error(err))
		v.status = fmt.Sprintf("Load failed: %v", err)
		return err
	}

	if err := v.painter.LoadModel(m); err != nil {
		logger.Error("failed to upload model", zap.String("path", path), zap.Error(err))
		v.status = fmt.Sprintf("Upload failed: %v", err)
		return err
	}

	v.status = fmt.Sprintf("%s: %d meshes, %d vertices, %d textures",
		filepath.Base(path), v.painter.MeshCount(), v.painter.VertexCount(), v.painter.TextureCount())
	return nil
}

// ShowCube switches back to the built-in cube.
func (v *Viewer) ShowCube() {
	if err := v.painter.ShowCube(); err != nil {
		logger.Error("failed to upload cube", zap.Error(err))
		return
	}
	v.status = "Showing cube"
}

// Frame draws the scene once.
func (v *Viewer) Frame() {
	v.painter.Draw()
}

// Close releases GPU resources.
func (v *Viewer) Close() {
	v.painter.Release()
}

// HandleResize updates the projection for a new framebuffer size.
func (v *Viewer) HandleResize(width, height int) {
	v.camera.ProcessResize(width, height)
}

// HandleKey applies a movement key.
func (v *Viewer) HandleKey(m camera.Movement) {
	v.camera.ProcessKeyboard(m)
}

// HandleMouseMove turns the camera by a screen-space delta (y grows
// downward). Ignored unless the mouse is captured.
func (v *Viewer) HandleMouseMove(dx, dy int) {
	if !v.captured {
		return
	}
	v.camera.ProcessMouseMovement(float32(dx), float32(-dy))
}

// HandleClick captures the mouse when the click lands on the scene rather
// than the GUI. Returns true if capture state changed.
func (v *Viewer) HandleClick(overGUI bool) bool {
	if v.captured || overGUI {
		return false
	}
	v.captured = true
	logger.Debug("mouse captured")
	return true
}

// ReleaseMouse ends mouse capture (Escape, focus loss). Returns true if
// capture state changed.
func (v *Viewer) ReleaseMouse() bool {
	if !v.captured {
		return false
	}
	v.captured = false
	logger.Debug("mouse released")
	return true
}

// Captured reports whether mouse look is active.
func (v *Viewer) Captured() bool { return v.captured }

// Status returns a one-line description of the current scene.
func (v *Viewer) Status() string { return v.status }

// Camera returns the fly camera.
func (v *Viewer) Camera() *camera.FlyCamera { return v.camera }

// Painter returns the scene painter.
func (v *Viewer) Painter() *painter.Painter { return v.painter }

// Title returns a window title naming the current model.
func (v *Viewer) Title() string {
	if path := v.painter.ModelPath(); path != "" {
		return v.cfg.Graphics.Title + " - " + filepath.Base(path)
	}
	return v.cfg.Graphics.Title
}
