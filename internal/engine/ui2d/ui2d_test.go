package ui2d

import (
	"strings"
	"testing"
)

// newTestContext builds a context whose renderer only batches vertices,
// so widgets can be exercised without a GL context.
func newTestContext() *Context {
	r := &Renderer{screenWidth: 600, screenHeight: 600, font: newFontAtlas()}
	return newContext(r)
}

func TestFontAtlas(t *testing.T) {
	f := newFontAtlas()
	gw, gh := f.GlyphSize()
	if gw != 7 || gh != 13 {
		t.Fatalf("glyph size: got %dx%d, want 7x13", gw, gh)
	}

	u0, v0, u1, v1 := f.GetGlyphUV('A')
	if !(u0 < u1 && v0 < v1) || u0 < 0 || v1 > 1 {
		t.Errorf("bad UV for 'A': %f %f %f %f", u0, v0, u1, v1)
	}

	// Some pixel in the 'A' cell must be covered.
	i := int('A' - firstGlyph)
	x0, y0 := (i%atlasCols)*gw, (i/atlasCols)*gh
	covered := false
	for y := y0; y < y0+gh && !covered; y++ {
		for x := x0; x < x0+gw; x++ {
			if f.atlas.RGBAAt(x, y).A > 0 {
				covered = true
				break
			}
		}
	}
	if !covered {
		t.Error("glyph 'A' was not rasterized")
	}

	// Non-ASCII falls back to '?'.
	qu0, qv0, _, _ := f.GetGlyphUV('?')
	eu0, ev0, _, _ := f.GetGlyphUV('é')
	if qu0 != eu0 || qv0 != ev0 {
		t.Error("non-ASCII rune should map to '?'")
	}
}

func TestMeasureText(t *testing.T) {
	f := newFontAtlas()
	tests := []struct {
		text  string
		scale float32
		w, h  float32
	}{
		{"", 1, 0, 13},
		{"abc", 1, 21, 13},
		{"abc", 2, 42, 26},
		{"ab\nabcd", 1, 28, 26},
	}
	for _, tt := range tests {
		w, h := f.MeasureText(tt.text, tt.scale)
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q, %v) = %v,%v; want %v,%v", tt.text, tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func frame(c *Context, draw func()) {
	c.input.Update()
	c.renderer.Begin()
	draw()
	c.input.EndFrame()
}

func TestButtonClick(t *testing.T) {
	c := newTestContext()
	var clicked bool
	drawUI := func() {
		c.BeginWindow("main", 10, 10, 200, 100, "Model")
		c.Row(0)
		clicked = c.Button("choose", 0, "Choose model")
		c.EndWindow()
	}

	// Title bar is 20px, content starts at y=38 after the row gap.
	c.input.MouseX, c.input.MouseY = 50, 50
	frame(c, drawUI)
	if clicked {
		t.Fatal("hover alone must not click")
	}

	c.input.MouseLeftDown = true
	frame(c, drawUI)
	if !clicked {
		t.Fatal("press over button should click")
	}

	frame(c, drawUI)
	if clicked {
		t.Error("held button should click only once")
	}
}

func TestClickEventConsumedOnce(t *testing.T) {
	c := newTestContext()
	c.input.MouseX, c.input.MouseY = 50, 50
	c.input.MouseLeftClicked = true

	c.input.Update()
	c.BeginWindow("main", 10, 10, 200, 100, "Model")
	c.Row(buttonH)
	first := c.Button("a", 0, "A")
	// Overlap a second button under the same point.
	c.cursorX = 10 + padding
	second := c.Button("b", 0, "B")
	c.EndWindow()

	if !first || second {
		t.Errorf("click should go to the first button only: %v %v", first, second)
	}
}

func TestWantsMouse(t *testing.T) {
	c := newTestContext()
	frame(c, func() {
		c.BeginWindow("main", 10, 10, 200, 100, "Model")
		c.EndWindow()
	})

	tests := []struct {
		x, y float32
		want bool
	}{
		{50, 50, true},
		{10, 10, true},
		{300, 300, false},
		{209, 109, true},
		{210, 50, false},
	}
	for _, tt := range tests {
		c.input.MouseX, c.input.MouseY = tt.x, tt.y
		if got := c.WantsMouse(); got != tt.want {
			t.Errorf("WantsMouse at (%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWindowDrag(t *testing.T) {
	c := newTestContext()
	drawUI := func() {
		c.BeginWindow("main", 10, 10, 200, 100, "Model")
		c.EndWindow()
	}

	c.input.MouseX, c.input.MouseY = 20, 15
	frame(c, drawUI)
	c.input.MouseLeftDown = true
	frame(c, drawUI)
	c.input.MouseX, c.input.MouseY = 70, 45
	frame(c, drawUI)
	c.input.MouseLeftDown = false
	frame(c, drawUI)

	ws := c.windows["main"]
	if ws.X != 60 || ws.Y != 40 {
		t.Errorf("window at %v,%v, want 60,40", ws.X, ws.Y)
	}
}

func TestFitText(t *testing.T) {
	c := newTestContext()
	long := "/home/user/models/" + strings.Repeat("x", 40) + "/teapot.obj"

	got := c.fitText(long, 140)
	if !strings.HasPrefix(got, ellipsis) || !strings.HasSuffix(got, "teapot.obj") {
		t.Errorf("fitText kept the wrong part: %q", got)
	}
	if w, _ := c.renderer.MeasureText(got, textScale); w > 140 {
		t.Errorf("fitted text too wide: %v", w)
	}
	if got := c.fitText("Empty", 140); got != "Empty" {
		t.Errorf("short text changed: %q", got)
	}
}

func TestDarken(t *testing.T) {
	c := Color{1, 0.5, 0, 0.8}.Darken(0.5)
	if c != (Color{0.5, 0.25, 0, 0.8}) {
		t.Errorf("Darken: got %+v", c)
	}
}
