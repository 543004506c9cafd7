// Package ui wraps the Dear ImGui SDL backend used by the ImGui frontend.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/modelview/internal/engine/camera"
)

// Backend owns the ImGui context and its SDL window.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and initializes GL function pointers for
// the scene renderer that shares the backend's context.
func NewBackend(title string, width, height int, clearColor [4]float32) (*Backend, error) {
	bk, err := backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b := &Backend{backend: bk}
	b.backend.SetAfterCreateContextHook(func() {
		imgui.CurrentIO().SetIniFilename("")
		imgui.StyleColorsDark()
	})
	b.backend.SetBgColor(imgui.NewVec4(clearColor[0], clearColor[1], clearColor[2], clearColor[3]))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

// SetTargetFPS caps the backend loop.
func (b *Backend) SetTargetFPS(fps int) {
	if fps > 0 {
		b.backend.SetTargetFPS(uint(fps))
	}
}

// Run starts the main render loop. It returns when the window is closed.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetViewport returns the main viewport work area.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// FramebufferScale returns the ratio between drawable and logical pixels.
func FramebufferScale() (float32, float32) {
	s := imgui.CurrentIO().DisplayFramebufferScale()
	return s.X, s.Y
}

// SceneImage draws a GL texture rendered bottom-up (an FBO color
// attachment) at the cursor.
func SceneImage(textureID uint32, width, height float32) {
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageV(*texRef,
		imgui.NewVec2(width, height),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0))
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

var movementKeys = []struct {
	key  imgui.Key
	move camera.Movement
}{
	{imgui.KeyW, camera.MoveForward},
	{imgui.KeyUpArrow, camera.MoveForward},
	{imgui.KeyS, camera.MoveBackward},
	{imgui.KeyDownArrow, camera.MoveBackward},
	{imgui.KeyA, camera.MoveLeft},
	{imgui.KeyLeftArrow, camera.MoveLeft},
	{imgui.KeyD, camera.MoveRight},
	{imgui.KeyRightArrow, camera.MoveRight},
	{imgui.KeySpace, camera.MoveUp},
	{imgui.KeyE, camera.MoveUp},
	{imgui.KeyLeftShift, camera.MoveDown},
	{imgui.KeyQ, camera.MoveDown},
}

// HeldMovements returns the camera movements whose keys are held this
// frame. Nothing is reported while an ImGui widget has keyboard focus.
func HeldMovements() []camera.Movement {
	if imgui.CurrentIO().WantTextInput() {
		return nil
	}
	var moves []camera.Movement
	for _, mk := range movementKeys {
		if imgui.IsKeyDown(mk.key) {
			moves = append(moves, mk.move)
		}
	}
	return moves
}
