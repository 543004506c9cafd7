// Package preview renders models to images on the CPU with fauxgl, for
// headless thumbnails without a GL context.
package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/Faultbox/modelview/internal/asset"
)

// ErrEmptyModel is returned when a model has no triangles to draw.
var ErrEmptyModel = errors.New("model has no triangles")

// Options controls the software render.
type Options struct {
	Width, Height int
	// Supersample renders at N times the size and downsamples for
	// antialiasing. Values below 1 mean 1.
	Supersample int
	FOV         float64
	Eye         [3]float64
	Background  string
	Color       string
}

// DefaultOptions returns a 256x256 three-quarter view.
func DefaultOptions() Options {
	return Options{
		Width:       256,
		Height:      256,
		Supersample: 2,
		FOV:         30,
		Eye:         [3]float64{4, 3, 5},
		Background:  "#4D7373",
		Color:       "#D9D2C3",
	}
}

// Render draws the model fitted into a bi-unit cube at the origin.
func Render(m *asset.Model, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	ss := max(opts.Supersample, 1)

	mesh := asset.ToFauxMesh(m)
	if len(mesh.Triangles) == 0 {
		return nil, ErrEmptyModel
	}
	mesh.BiUnitCube()

	var (
		eye    = fauxgl.V(opts.Eye[0], opts.Eye[1], opts.Eye[2])
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 1, 0)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)

	ctx := fauxgl.NewContext(opts.Width*ss, opts.Height*ss)
	ctx.ClearColorBufferWith(fauxgl.HexColor(opts.Background))

	aspect := float64(opts.Width) / float64(opts.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(opts.FOV, aspect, 0.1, 100)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(opts.Color)
	ctx.Shader = shader
	ctx.DrawMesh(mesh)

	img := ctx.Image()
	if ss > 1 {
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	return img, nil
}

// Save writes img as a PNG.
func Save(path string, img image.Image) error {
	if err := fauxgl.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
