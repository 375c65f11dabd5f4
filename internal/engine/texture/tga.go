package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// decodeTGA decodes uncompressed and RLE true-color TGA images with 24 or
// 32 bits per pixel. TGA has no magic number, so it is picked by file
// extension rather than registered with the image package.
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}
	if imageType == tgaTrueColor {
		if err := r.raw(width * height); err != nil {
			return nil, err
		}
	} else if err := r.rle(); err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	img         *image.RGBA
	src         []byte
	pos         int
	stride      int
	topToBottom bool
	written     int
}

// pixel reads one BGR(A) pixel.
func (r *tgaReader) pixel() (color.RGBA, error) {
	if r.pos+r.stride > len(r.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.src[r.pos : r.pos+r.stride]
	r.pos += r.stride

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel in file order. Bottom-up images are
// flipped so row 0 is the top.
func (r *tgaReader) put(c color.RGBA) {
	w := r.img.Rect.Dx()
	h := r.img.Rect.Dy()
	x, y := r.written%w, r.written/w
	if !r.topToBottom {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.written++
}

func (r *tgaReader) remaining() int {
	return r.img.Rect.Dx()*r.img.Rect.Dy() - r.written
}

func (r *tgaReader) raw(n int) error {
	for i := 0; i < n && r.remaining() > 0; i++ {
		c, err := r.pixel()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) rle() error {
	for r.remaining() > 0 {
		if r.pos >= len(r.src) {
			return errTGATruncated
		}
		packet := r.src[r.pos]
		r.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 == 0 {
			if err := r.raw(count); err != nil {
				return err
			}
			continue
		}

		c, err := r.pixel()
		if err != nil {
			return err
		}
		for i := 0; i < count && r.remaining() > 0; i++ {
			r.put(c)
		}
	}
	return nil
}
