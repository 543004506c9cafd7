package ui2d

import "fmt"

const (
	textScale = float32(1)
	titleBarH = float32(20)
	padding   = float32(8)
	buttonH   = float32(24)
	widgetGap = float32(4)
	ellipsis  = "..."
)

// Context is the main UI context that manages rendering and input.
type Context struct {
	renderer *Renderer
	input    *InputState

	hotWidget    string
	activeWidget string

	windows       map[string]*WindowState
	currentWindow *WindowState

	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool
	moved  bool
}

// NewContext creates a UI context and its GL renderer.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return newContext(r), nil
}

func newContext(r *Renderer) *Context {
	return &Context{
		renderer: r,
		input:    &InputState{},
		windows:  make(map[string]*WindowState),
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.hotWidget = ""
}

// End finishes the UI frame.
func (c *Context) End() {
	c.renderer.End()
	c.input.EndFrame()
}

// WantsMouse reports whether the cursor is over an open window, in which
// case clicks belong to the GUI rather than the scene.
func (c *Context) WantsMouse() bool {
	for _, ws := range c.windows {
		if ws.Open && c.input.IsMouseInRect(ws.X, ws.Y, ws.W, ws.H) {
			return true
		}
	}
	return false
}

// BeginWindow starts a window with a draggable title bar. The position
// passed in is used until the user drags the window.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, W: w, H: h, Open: true}
		c.windows[id] = ws
	} else if !ws.moved {
		ws.X, ws.Y = x, y
	}
	ws.W, ws.H = w, h

	if !ws.Open {
		return false
	}
	c.currentWindow = ws

	titleBar := Rect{ws.X, ws.Y, ws.W, titleBarH}
	if c.input.MouseLeftPressed && titleBar.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = id + "_titlebar"
	}
	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
		ws.moved = true
	}
	if c.input.MouseLeftReleased {
		ws.Moving = false
		if c.activeWidget == id+"_titlebar" {
			c.activeWidget = ""
		}
	}

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)

	_, textH := c.renderer.MeasureText(title, textScale)
	c.renderer.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)

	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0

	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + widgetGap
	c.rowH = height
}

// contentWidth is the usable width from the cursor to the right padding.
func (c *Context) contentWidth() float32 {
	return c.currentWindow.X + c.currentWindow.W - padding - c.cursorX
}

// Button draws a button and returns true on the frame it is clicked.
// A width of 0 fills the rest of the row.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y := c.cursorX, c.cursorY
	h := c.rowH
	if h == 0 {
		h = buttonH
	}
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed || c.input.MouseLeftClicked {
			c.activeWidget = fullID
			clicked = true
			c.input.MouseLeftClicked = false
		}
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	c.renderer.DrawRect(x, y, width, h, color)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	textW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorText)

	c.cursorX += width + widgetGap
	return clicked
}

// ButtonDisabled draws a button that ignores input.
func (c *Context) ButtonDisabled(width float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x, y := c.cursorX, c.cursorY
	h := c.rowH
	if h == 0 {
		h = buttonH
	}
	if width == 0 {
		width = c.contentWidth()
	}

	c.renderer.DrawRect(x, y, width, h, ColorButtonNormal.Darken(0.3))
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder.Darken(0.3))
	textW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorTextDim)

	c.cursorX += width + widgetGap
}

// Label draws a text label, clipped from the left with "..." when it does
// not fit the row.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}

	text = c.fitText(text, c.contentWidth())
	y := c.cursorY
	if c.rowH > 0 {
		_, textH := c.renderer.MeasureText(text, textScale)
		y += (c.rowH - textH) / 2
	}
	c.renderer.DrawText(c.cursorX, y, text, textScale, color)

	w, _ := c.renderer.MeasureText(text, textScale)
	c.cursorX += w + widgetGap
}

// fitText keeps the tail of text so that it fits in width, since the end
// of a path is the informative part.
func (c *Context) fitText(text string, width float32) string {
	if w, _ := c.renderer.MeasureText(text, textScale); w <= width {
		return text
	}
	runes := []rune(text)
	for i := 1; i < len(runes); i++ {
		s := ellipsis + string(runes[i:])
		if w, _ := c.renderer.MeasureText(s, textScale); w <= width {
			return s
		}
	}
	return ellipsis
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + widgetGap
	c.rowH = 0
	x := c.currentWindow.X + padding
	c.renderer.DrawRect(x, c.cursorY, c.currentWindow.W-2*padding, 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
