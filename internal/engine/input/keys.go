package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/modelview/internal/engine/camera"
)

// movementKeys maps WASD plus Space/LShift (and Q/E) to camera steps.
var movementKeys = map[sdl.Scancode]camera.Movement{
	sdl.SCANCODE_W:      camera.MoveForward,
	sdl.SCANCODE_UP:     camera.MoveForward,
	sdl.SCANCODE_S:      camera.MoveBackward,
	sdl.SCANCODE_DOWN:   camera.MoveBackward,
	sdl.SCANCODE_A:      camera.MoveLeft,
	sdl.SCANCODE_LEFT:   camera.MoveLeft,
	sdl.SCANCODE_D:      camera.MoveRight,
	sdl.SCANCODE_RIGHT:  camera.MoveRight,
	sdl.SCANCODE_SPACE:  camera.MoveUp,
	sdl.SCANCODE_E:      camera.MoveUp,
	sdl.SCANCODE_LSHIFT: camera.MoveDown,
	sdl.SCANCODE_Q:      camera.MoveDown,
}

// MovementForKey returns the camera step bound to a key.
func MovementForKey(sc sdl.Scancode) (camera.Movement, bool) {
	m, ok := movementKeys[sc]
	return m, ok
}
