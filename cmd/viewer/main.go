// Command viewer is the SDL2 frontend of the model viewer: a free-fly
// camera over a spinning cube or a model chosen through a native dialog.
package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/debug"
	"github.com/Faultbox/modelview/internal/engine/input"
	"github.com/Faultbox/modelview/internal/engine/renderer"
	"github.com/Faultbox/modelview/internal/engine/ui2d"
	"github.com/Faultbox/modelview/internal/engine/window"
	"github.com/Faultbox/modelview/internal/logger"
	"github.com/Faultbox/modelview/internal/picker"
	"github.com/Faultbox/modelview/internal/viewer"
)

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

	logger.Info("=== Model Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := newApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.close()

	a.run()
	logger.Info("viewer closed normally")
}

type app struct {
	cfg      *config.Config
	win      *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Context
	input    *input.Input
	limiter  *window.Limiter
	viewer   *viewer.Viewer
	picker   *picker.Picker
	shots    *debug.ScreenshotCapture

	running        bool
	wantScreenshot bool
}

func newApp(cfg *config.Config) (*app, error) {
	g := cfg.Graphics
	win, err := window.New(window.Config{
		Title:      g.Title,
		Width:      g.Width,
		Height:     g.Height,
		Fullscreen: g.Fullscreen,
		VSync:      g.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	dw, dh := win.DrawableSize()
	r, err := renderer.New(renderer.Config{Width: dw, Height: dh, ClearColor: g.ClearColor})
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	ww, wh := win.GetSize()
	ui, err := ui2d.NewContext(ww, wh)
	if err != nil {
		r.Close()
		win.Close()
		return nil, fmt.Errorf("create ui: %w", err)
	}

	a := &app{
		cfg:      cfg,
		win:      win,
		renderer: r,
		ui:       ui,
		input:    input.New(),
		limiter:  window.NewLimiter(g.FPSLimit),
		viewer:   viewer.New(cfg, r),
		picker:   picker.New("Choose model", "3D models", cfg.Viewer.ModelExtensions, cfg.Viewer.StartDir),
		shots:    debug.NewScreenshotCapture(cfg.Viewer.ScreenshotDir, "modelview"),
	}

	a.viewer.HandleResize(dw, dh)
	a.viewer.Init()
	a.win.SetTitle(a.viewer.Title())
	return a, nil
}

func (a *app) close() {
	a.viewer.Close()
	a.ui.Close()
	a.renderer.Close()
	a.win.Close()
}

func (a *app) run() {
	a.running = true
	for a.running {
		if a.input.Update() {
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		if path, ok := a.picker.Poll(); ok {
			if err := a.viewer.OpenModel(path); err == nil {
				a.win.SetTitle(a.viewer.Title())
			}
		}

		a.renderer.Begin()
		a.viewer.Frame()

		a.ui.Begin()
		a.drawGUI()
		a.ui.End()

		if a.wantScreenshot {
			a.wantScreenshot = false
			a.screenshot()
		}

		a.win.SwapBuffers()
		a.limiter.Wait()
	}
}

func (a *app) handleEvent(ev input.Event) {
	uiIn := a.ui.Input()

	switch ev.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		dw, dh := a.win.DrawableSize()
		a.renderer.Resize(dw, dh)
		a.viewer.HandleResize(dw, dh)
		a.ui.Resize(ev.Width, ev.Height)

	case input.EventFocusLost:
		a.releaseMouse()
		uiIn.MouseLeftDown = false

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			a.releaseMouse()
		case sdl.SCANCODE_F12:
			if !ev.Repeat {
				a.wantScreenshot = true
			}
		default:
			if m, ok := input.MovementForKey(ev.Key); ok {
				a.viewer.HandleKey(m)
			}
		}

	case input.EventMouseMove:
		if a.viewer.Captured() {
			a.viewer.HandleMouseMove(ev.DX, ev.DY)
			return
		}
		uiIn.MouseX, uiIn.MouseY = float32(ev.MouseX), float32(ev.MouseY)

	case input.EventMouseDown:
		if ev.Button != sdl.BUTTON_LEFT || a.viewer.Captured() {
			return
		}
		uiIn.MouseX, uiIn.MouseY = float32(ev.MouseX), float32(ev.MouseY)
		uiIn.MouseLeftDown = true
		uiIn.MouseLeftClicked = true
		if a.viewer.HandleClick(a.ui.WantsMouse()) {
			a.win.SetMouseCaptured(true)
		}

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			uiIn.MouseLeftDown = false
		}
	}
}

func (a *app) releaseMouse() {
	if a.viewer.ReleaseMouse() {
		a.win.SetMouseCaptured(false)
	}
}

func (a *app) drawGUI() {
	if !a.ui.BeginWindow("model", 10, 10, 280, 150, "Model") {
		return
	}
	defer a.ui.EndWindow()

	a.ui.Row(24)
	if a.picker.Pending() {
		a.ui.ButtonDisabled(0, "Choosing...")
	} else if a.ui.Button("choose", 0, "Choose model") {
		a.picker.Open()
	}

	a.ui.Row(16)
	a.ui.Label(a.picker.Label())

	a.ui.Row(24)
	if a.ui.Button("cube", 0, "Show cube") {
		a.viewer.ShowCube()
		a.win.SetTitle(a.viewer.Title())
	}

	a.ui.Row(16)
	a.ui.LabelColored(a.viewer.Status(), ui2d.ColorTextDim)

	a.ui.Row(16)
	if a.viewer.Captured() {
		a.ui.LabelColored("Esc releases the mouse", ui2d.ColorTextDim)
	} else {
		a.ui.LabelColored("Click the scene to look around", ui2d.ColorTextDim)
	}
}

func (a *app) screenshot() {
	img, err := debug.ReadPixels(a.win.DrawableSize())
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
