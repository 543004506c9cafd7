package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	TGATypeTrueColor    = 2
	TGATypeGray         = 3
	TGATypeTrueColorRLE = 10
	TGATypeGrayRLE      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color (24/32 bpp) or
// grayscale (8 bpp) TGA image. Color-mapped files are rejected.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}

	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	rle := imageType == TGATypeTrueColorRLE || imageType == TGATypeGrayRLE
	switch {
	case imageType != TGATypeTrueColor && imageType != TGATypeTrueColorRLE && !gray:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported color depth %d", bpp)
	case width == 0 || height == 0:
		return nil, errors.New("tga: empty image")
	}

	if width*height > MaxPixels {
		return nil, fmt.Errorf("tga: %dx%d: %w", width, height, ErrTooLarge)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	if !rle && len(data)-offset < width*height*(bpp/8) {
		return nil, errTGATruncated
	}

	d := &tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}
	if rle {
		d.decodeRLE()
	} else {
		d.decodeRaw()
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	width       int
	height      int
	stride      int
	topToBottom bool
}

// next reads one BGR(A) or gray pixel from the stream.
func (d *tgaDecoder) next() (color.RGBA, bool) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride

	switch d.stride {
	case 1:
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, true
	case 3:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}, true
	default:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}, true
	}
}

// put stores pixel n in file order, flipping bottom-up files.
func (d *tgaDecoder) put(n int, c color.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() {
	total := d.width * d.height
	for n := 0; n < total; n++ {
		c, _ := d.next()
		d.put(n, c)
	}
}

// decodeRLE stops quietly at the end of input; missing pixels stay transparent.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	n := 0
	for n < total && d.pos < len(d.src) {
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, ok := d.next()
			if !ok {
				return
			}
			for i := 0; i < count && n < total; i++ {
				d.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := d.next()
			if !ok {
				return
			}
			d.put(n, c)
			n++
		}
	}
}
