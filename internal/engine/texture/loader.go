// Package texture decodes image resources into GPU textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/logger"
)

// Source provides raw resource bytes by slash-separated name.
// *assets.Manager satisfies it.
type Source interface {
	Load(name string) ([]byte, error)
}

// LoadError reports a texture that could not be read, decoded or uploaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading texture %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader turns resource names into textures.
type Loader struct {
	dev     gfx.Device
	src     Source
	maxSize int
}

// NewLoader creates a loader. Images larger than maxSize on either side
// are scaled down to fit; maxSize <= 0 disables scaling.
func NewLoader(dev gfx.Device, src Source, maxSize int) *Loader {
	return &Loader{dev: dev, src: src, maxSize: maxSize}
}

// Decode reads and decodes an image without uploading it.
// PNG, JPEG, BMP, WebP and TGA are supported.
func (l *Loader) Decode(name string) (*image.RGBA, error) {
	if name == "" {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("no texture configured")}
	}
	data, err := l.src.Load(name)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	var img image.Image
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err = decodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	return fit(img, l.maxSize), nil
}

// Load decodes and uploads an image. Failures are *LoadError.
func (l *Loader) Load(name string) (gfx.Texture, error) {
	img, err := l.Decode(name)
	if err != nil {
		return 0, err
	}
	tex, err := l.dev.NewTexture(img)
	if err != nil {
		return 0, &LoadError{Path: name, Err: err}
	}

	logger.Debug("texture loaded",
		zap.String("path", name),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
	return tex, nil
}

// LoadOr is Load that falls back to a 1×1 texture of the given color.
// The returned error is only set when the placeholder itself fails.
func (l *Loader) LoadOr(name string, fallback colorful.Color) (gfx.Texture, error) {
	tex, err := l.Load(name)
	if err == nil {
		return tex, nil
	}
	if name != "" {
		logger.Warn("texture unavailable, using placeholder",
			zap.String("path", name),
			zap.String("color", fallback.Hex()),
			zap.Error(err))
	}
	return Placeholder(l.dev, fallback)
}

// Placeholder uploads a single opaque pixel of color c.
func Placeholder(dev gfx.Device, c colorful.Color) (gfx.Texture, error) {
	r, g, b := c.Clamped().RGB255()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: r, G: g, B: b, A: 255})

	tex, err := dev.NewTexture(img)
	if err != nil {
		return 0, fmt.Errorf("uploading placeholder %s: %w", c.Hex(), err)
	}
	return tex, nil
}

// fit converts img to RGBA with its origin at (0,0), scaling it down to
// maxSize on the longer side when needed.
func fit(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Rect, img, b, xdraw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Rect, img, b.Min, xdraw.Src)
	return dst
}
