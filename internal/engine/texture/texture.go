// Package texture loads image files into RGBA pixel data ready for GPU upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxPixels caps the decoded size of any texture.
const MaxPixels = 8192 * 8192

// ErrTooLarge is returned for images declaring more than MaxPixels pixels.
var ErrTooLarge = errors.New("image dimensions too large")

// Load reads and decodes an image file. Images wider or taller than
// maxSize are scaled down preserving aspect ratio; maxSize <= 0 disables it.
func Load(path string, maxSize int) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return ToRGBA(FitWithin(img, maxSize)), nil
}

// Decode decodes image bytes. TGA has no magic number, so it is selected
// by extension; every other format is sniffed. Images declaring more than
// MaxPixels pixels are rejected before any pixel buffer is allocated.
func Decode(data []byte, ext string) (image.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%dx%d: %w", cfg.Width, cfg.Height, ErrTooLarge)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// FitWithin scales img down so neither side exceeds maxSize.
func FitWithin(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
