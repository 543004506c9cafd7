// Command viewer-imgui is the Dear ImGui frontend of the model viewer. The
// scene is drawn into an offscreen framebuffer and shown as an image behind
// the controls window.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/debug"
	"github.com/Faultbox/modelview/internal/engine/framebuffer"
	"github.com/Faultbox/modelview/internal/engine/renderer"
	"github.com/Faultbox/modelview/internal/engine/ui"
	"github.com/Faultbox/modelview/internal/logger"
	"github.com/Faultbox/modelview/internal/picker"
	"github.com/Faultbox/modelview/internal/viewer"
)

func init() {
	// ImGui and OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Model Viewer (ImGui) ===")

	a, err := newApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.close()

	a.backend.Run(a.render)
	logger.Info("viewer closed normally")
}

type app struct {
	cfg      *config.Config
	backend  *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	viewer   *viewer.Viewer
	picker   *picker.Picker
	shots    *debug.ScreenshotCapture
}

func newApp(cfg *config.Config) (*app, error) {
	g := cfg.Graphics
	backend, err := ui.NewBackend(g.Title, g.Width, g.Height, g.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("create imgui backend: %w", err)
	}
	backend.SetTargetFPS(g.FPSLimit)

	r, err := renderer.New(renderer.Config{Width: g.Width, Height: g.Height, ClearColor: g.ClearColor})
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	fb, err := framebuffer.New(int32(g.Width), int32(g.Height))
	if err != nil {
		r.Close()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		backend:  backend,
		renderer: r,
		fb:       fb,
		viewer:   viewer.New(cfg, r),
		picker:   picker.New("Choose model", "3D models", cfg.Viewer.ModelExtensions, cfg.Viewer.StartDir),
		shots:    debug.NewScreenshotCapture(cfg.Viewer.ScreenshotDir, "modelview"),
	}
	a.viewer.Init()
	a.backend.SetWindowTitle(a.viewer.Title())
	return a, nil
}

func (a *app) close() {
	a.viewer.Close()
	a.fb.Destroy()
	a.renderer.Close()
}

func (a *app) render() {
	if path, ok := a.picker.Poll(); ok {
		if err := a.viewer.OpenModel(path); err == nil {
			a.backend.SetWindowTitle(a.viewer.Title())
		}
	}

	a.handleKeys()

	x, y, w, h := a.backend.GetViewport()
	a.drawScene(w, h)
	a.sceneWindow(x, y, w, h)
	a.controlsWindow(x, y)
}

func (a *app) handleKeys() {
	io := imgui.CurrentIO()
	if io.AppFocusLost() || ui.IsKeyPressed(imgui.KeyEscape) {
		a.viewer.ReleaseMouse()
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		a.screenshot()
	}
	for _, m := range ui.HeldMovements() {
		a.viewer.HandleKey(m)
	}
}

// drawScene renders the 3D view into the framebuffer at drawable
// resolution for a w x h logical area.
func (a *app) drawScene(w, h float32) {
	sx, sy := ui.FramebufferScale()
	pw, ph := int32(w*sx), int32(h*sy)
	if pw <= 0 || ph <= 0 {
		return
	}
	if a.fb.Resize(pw, ph) {
		a.viewer.HandleResize(int(pw), int(ph))
	}

	restore := a.fb.BindWithViewport()
	a.fb.Clear(a.cfg.Graphics.ClearColor)
	a.viewer.Frame()
	restore()
}

func (a *app) sceneWindow(x, y, w, h float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##scene", nil, flags) {
		ui.SceneImage(a.fb.ColorTexture(), w, h)

		hovered := imgui.IsItemHovered()
		if imgui.IsItemClicked() {
			a.viewer.HandleClick(false)
		}
		if a.viewer.Captured() {
			if !hovered {
				a.viewer.ReleaseMouse()
			} else {
				imgui.SetMouseCursor(imgui.MouseCursorNone)
				d := imgui.CurrentIO().MouseDelta()
				a.viewer.HandleMouseMove(int(d.X), int(d.Y))
			}
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (a *app) controlsWindow(x, y float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x+10, y+10))
	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoCollapse | imgui.WindowFlagsNoMove
	if imgui.BeginV("Model", nil, flags) {
		if a.picker.Pending() {
			imgui.BeginDisabled()
			imgui.Button("Choosing...")
			imgui.EndDisabled()
		} else if imgui.Button("Choose model") {
			a.picker.Open()
		}
		imgui.SameLine()
		imgui.TextUnformatted(a.picker.Label())

		if imgui.Button("Show cube") {
			a.viewer.ShowCube()
			a.backend.SetWindowTitle(a.viewer.Title())
		}

		imgui.Separator()
		imgui.BeginDisabled()
		imgui.TextUnformatted(a.viewer.Status())
		imgui.EndDisabled()
		if a.viewer.Captured() {
			imgui.TextDisabled("Esc releases the mouse")
		} else {
			imgui.TextDisabled("Click the scene to look around")
		}
	}
	imgui.End()
}

func (a *app) screenshot() {
	img, err := a.fb.ReadImage()
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.CaptureFromImage(img)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
