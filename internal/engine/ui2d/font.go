package ui2d

import (
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasCols  = 16
)

// Font is a fixed-width bitmap font baked from basicfont.Face7x13 into a
// single RGBA atlas (white glyphs, coverage in alpha).
type Font struct {
	atlas   *image.RGBA
	glyphW  int
	glyphH  int
	texture uint32
}

// newFontAtlas rasterizes printable ASCII into an atlas. No GL calls.
func newFontAtlas() *Font {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height

	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols
	atlas := image.NewRGBA(image.Rect(0, 0, atlasCols*gw, rows*gh))
	draw.Draw(atlas, atlas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for ch := firstGlyph; ch <= lastGlyph; ch++ {
		i := int(ch - firstGlyph)
		x, y := (i%atlasCols)*gw, (i/atlasCols)*gh
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(ch))
	}

	return &Font{atlas: atlas, glyphW: gw, glyphH: gh}
}

// NewFont builds the atlas and uploads it to a GL texture.
func NewFont() *Font {
	f := newFontAtlas()

	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	b := f.atlas.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.atlas.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return f
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GetGlyphUV returns atlas coordinates for a rune. Runes outside printable
// ASCII render as '?'.
func (f *Font) GetGlyphUV(ch rune) (u0, v0, u1, v1 float32) {
	if ch < firstGlyph || ch > lastGlyph {
		ch = '?'
	}
	i := int(ch - firstGlyph)
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	x := float32((i % atlasCols) * f.glyphW)
	y := float32((i / atlasCols) * f.glyphH)
	return x / w, y / h, (x + float32(f.glyphW)) / w, (y + float32(f.glyphH)) / h
}

// MeasureText returns the size of text at the given scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, cols, maxCols := 1, 0, 0
	for _, ch := range text {
		if ch == '\n' {
			lines++
			cols = 0
			continue
		}
		cols++
		if cols > maxCols {
			maxCols = cols
		}
	}
	return float32(maxCols*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}

// TextureID returns the GL texture, 0 if never uploaded.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// Close deletes the GL texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
