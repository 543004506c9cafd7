// Package camera provides the free-fly camera used by the viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a single keyboard step direction relative to the camera.
type Movement int

const (
	MoveForward Movement = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

// String returns the movement name.
func (m Movement) String() string {
	switch m {
	case MoveForward:
		return "forward"
	case MoveBackward:
		return "backward"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	default:
		return "unknown"
	}
}

// FlyCamera moves freely in world space. Yaw and pitch are in degrees;
// yaw -90 looks down -Z.
type FlyCamera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	// Speed is the distance covered by one ProcessKeyboard call.
	Speed float32
	// Sensitivity converts mouse deltas to degrees.
	Sensitivity float32

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	// Constraints
	MinPitch float32
	MaxPitch float32

	worldUp mgl32.Vec3
	front   mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3

	width, height int
}

// NewFlyCamera creates a camera at position looking down -Z.
func NewFlyCamera(position mgl32.Vec3, speed float32) *FlyCamera {
	c := &FlyCamera{
		Position:    position,
		Yaw:         -90,
		Pitch:       0,
		Speed:       speed,
		Sensitivity: 0.1,
		FOV:         45,
		Near:        0.1,
		Far:         100,
		MinPitch:    -89,
		MaxPitch:    89,
		worldUp:     mgl32.Vec3{0, 1, 0},
		width:       1,
		height:      1,
	}
	c.updateVectors()
	return c
}

// ProcessKeyboard moves the camera one step along its current basis.
// Orientation is not changed.
func (c *FlyCamera) ProcessKeyboard(m Movement) {
	switch m {
	case MoveForward:
		c.Position = c.Position.Add(c.front.Mul(c.Speed))
	case MoveBackward:
		c.Position = c.Position.Sub(c.front.Mul(c.Speed))
	case MoveLeft:
		c.Position = c.Position.Sub(c.right.Mul(c.Speed))
	case MoveRight:
		c.Position = c.Position.Add(c.right.Mul(c.Speed))
	case MoveUp:
		c.Position = c.Position.Add(c.up.Mul(c.Speed))
	case MoveDown:
		c.Position = c.Position.Sub(c.up.Mul(c.Speed))
	}
}

// ProcessMouseMovement turns the camera. Positive dx turns right,
// positive dy looks up.
func (c *FlyCamera) ProcessMouseMovement(dx, dy float32) {
	c.Yaw = wrapDegrees(c.Yaw + dx*c.Sensitivity)
	c.Pitch = mgl32.Clamp(c.Pitch+dy*c.Sensitivity, c.MinPitch, c.MaxPitch)
	c.updateVectors()
}

// ProcessResize records the viewport size. Non-positive sizes
// (minimized windows) are ignored so the aspect ratio stays valid.
func (c *FlyCamera) ProcessResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
}

// Aspect returns the viewport aspect ratio.
func (c *FlyCamera) Aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// ViewMatrix returns the world-to-camera transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection for the current viewport.
func (c *FlyCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *FlyCamera) Up() mgl32.Vec3 { return c.up }

// SetOrientation sets yaw and pitch directly, applying the same limits as mouse input.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.Yaw = wrapDegrees(yaw)
	c.Pitch = mgl32.Clamp(pitch, c.MinPitch, c.MaxPitch)
	c.updateVectors()
}

func (c *FlyCamera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// wrapDegrees maps an angle into [-180, 180).
func wrapDegrees(deg float32) float32 {
	d := math.Mod(float64(deg)+180, 360)
	if d < 0 {
		d += 360
	}
	return float32(d - 180)
}
