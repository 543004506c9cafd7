package window

import "github.com/veandco/go-sdl2/sdl"

// Limiter caps the frame rate by sleeping out the rest of each frame.
type Limiter struct {
	frameMs uint32
	last    uint32
}

// NewLimiter creates a limiter for fps frames per second; fps <= 0 disables it.
func NewLimiter(fps int) *Limiter {
	l := &Limiter{last: sdl.GetTicks()}
	if fps > 0 {
		l.frameMs = uint32(1000 / fps)
	}
	return l
}

// Wait blocks until the current frame's time budget is spent.
func (l *Limiter) Wait() {
	if l.frameMs == 0 {
		return
	}
	if elapsed := sdl.GetTicks() - l.last; elapsed < l.frameMs {
		sdl.Delay(l.frameMs - elapsed)
	}
	l.last = sdl.GetTicks()
}
