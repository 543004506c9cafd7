package ui2d

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Palette used by the widgets.
var (
	ColorPanelBg      = Color{0.10, 0.12, 0.13, 0.92}
	ColorPanelBorder  = Color{0.32, 0.40, 0.42, 1}
	ColorButtonNormal = Color{0.16, 0.22, 0.24, 1}
	ColorButtonHover  = Color{0.22, 0.32, 0.34, 1}
	ColorButtonActive = Color{0.12, 0.45, 0.48, 1}
	ColorText         = Color{0.92, 0.92, 0.92, 1}
	ColorTextDim      = Color{0.55, 0.60, 0.62, 1}
)

// Darken scales RGB toward black by factor.
func (c Color) Darken(factor float32) Color {
	return Color{c.R * (1 - factor), c.G * (1 - factor), c.B * (1 - factor), c.A}
}
