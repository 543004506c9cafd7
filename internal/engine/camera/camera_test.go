package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func TestNewFlyCameraLooksDownNegativeZ(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 0, 3}, 1)

	f := c.Front()
	if abs(f[0]) > 1e-5 || abs(f[1]) > 1e-5 || abs(f[2]+1) > 1e-5 {
		t.Errorf("front: got %v, want (0, 0, -1)", f)
	}
	if abs(c.Right()[0]-1) > 1e-5 {
		t.Errorf("right: got %v, want (1, 0, 0)", c.Right())
	}
	if abs(c.Up()[1]-1) > 1e-5 {
		t.Errorf("up: got %v, want (0, 1, 0)", c.Up())
	}
}

func TestProcessKeyboardMovesAlongBasis(t *testing.T) {
	tests := []struct {
		move Movement
		dir  func(c *FlyCamera) mgl32.Vec3
	}{
		{MoveForward, func(c *FlyCamera) mgl32.Vec3 { return c.Front() }},
		{MoveBackward, func(c *FlyCamera) mgl32.Vec3 { return c.Front().Mul(-1) }},
		{MoveRight, func(c *FlyCamera) mgl32.Vec3 { return c.Right() }},
		{MoveLeft, func(c *FlyCamera) mgl32.Vec3 { return c.Right().Mul(-1) }},
		{MoveUp, func(c *FlyCamera) mgl32.Vec3 { return c.Up() }},
		{MoveDown, func(c *FlyCamera) mgl32.Vec3 { return c.Up().Mul(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.move.String(), func(t *testing.T) {
			c := NewFlyCamera(mgl32.Vec3{1, 2, 3}, 0.5)
			c.SetOrientation(30, 20)
			yaw, pitch := c.Yaw, c.Pitch
			start := c.Position

			c.ProcessKeyboard(tt.move)

			want := start.Add(tt.dir(c).Mul(0.5))
			if !c.Position.ApproxEqualThreshold(want, 1e-5) {
				t.Errorf("position: got %v, want %v", c.Position, want)
			}
			if c.Yaw != yaw || c.Pitch != pitch {
				t.Errorf("orientation changed: yaw %f->%f pitch %f->%f", yaw, c.Yaw, pitch, c.Pitch)
			}
		})
	}
}

func TestProcessKeyboardRoundTrip(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 0, 3}, 0.1)
	start := c.Position
	for i := 0; i < 10; i++ {
		c.ProcessKeyboard(MoveForward)
	}
	for i := 0; i < 10; i++ {
		c.ProcessKeyboard(MoveBackward)
	}
	if !c.Position.ApproxEqualThreshold(start, 1e-5) {
		t.Errorf("forward then backward should return to start: got %v", c.Position)
	}
}

func TestPitchClamped(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, 1)

	for i := 0; i < 1000; i++ {
		c.ProcessMouseMovement(0, 50)
	}
	if c.Pitch != 89 {
		t.Errorf("pitch after looking up: got %f, want 89", c.Pitch)
	}

	for i := 0; i < 1000; i++ {
		c.ProcessMouseMovement(0, -50)
	}
	if c.Pitch != -89 {
		t.Errorf("pitch after looking down: got %f, want -89", c.Pitch)
	}

	// Front never flips past vertical.
	if c.Front()[1] >= 0 || abs(c.Front().Len()-1) > 1e-5 {
		t.Errorf("front after clamp: %v", c.Front())
	}
}

func TestYawWraps(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, 1)
	for i := 0; i < 100; i++ {
		c.ProcessMouseMovement(100, 0)
	}
	if c.Yaw < -180 || c.Yaw >= 180 {
		t.Errorf("yaw out of range: %f", c.Yaw)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{-90, -90},
		{180, -180},
		{270, -90},
		{-270, 90},
		{720, 0},
	}
	for _, tt := range tests {
		if got := wrapDegrees(tt.in); abs(got-tt.want) > 1e-4 {
			t.Errorf("wrapDegrees(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestProcessResizeAspect(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, 1)
	c.ProcessResize(800, 600)

	if abs(c.Aspect()-800.0/600.0) > 1e-6 {
		t.Errorf("aspect: got %f, want %f", c.Aspect(), 800.0/600.0)
	}

	// Column-major perspective: m[0] = f/aspect, m[5] = f.
	p := c.ProjectionMatrix()
	if got := p[5] / p[0]; abs(got-800.0/600.0) > 1e-4 {
		t.Errorf("projection aspect: got %f, want %f", got, 800.0/600.0)
	}
	if p[11] != -1 || p[15] != 0 {
		t.Errorf("not a perspective matrix: %v", p)
	}
}

func TestProcessResizeIgnoresEmpty(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, 1)
	c.ProcessResize(640, 480)
	c.ProcessResize(0, 0)
	c.ProcessResize(640, -1)

	if abs(c.Aspect()-640.0/480.0) > 1e-6 {
		t.Errorf("aspect changed by invalid resize: %f", c.Aspect())
	}
	if math.IsInf(float64(c.ProjectionMatrix()[0]), 0) {
		t.Error("projection contains Inf")
	}
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 0, 3}, 1)
	v := c.ViewMatrix()

	eye := v.Mul4x1(c.Position.Vec4(1))
	if abs(eye[0]) > 1e-5 || abs(eye[1]) > 1e-5 || abs(eye[2]) > 1e-5 {
		t.Errorf("eye in view space: got %v, want origin", eye)
	}

	// A point in front of the camera lands on -Z in view space.
	p := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if abs(p[2]+3) > 1e-5 {
		t.Errorf("origin in view space: got %v, want z=-3", p)
	}
}
