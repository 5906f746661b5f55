package raster

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/Faultbox/mgen/pkg/math"
)

// Canvas is the CPU Surface backend. Drawing goes through
// golang.org/x/image/draw affine transforms.
type Canvas struct {
	img    *image.RGBA
	ctm    math.Affine
	stack  []math.Affine
	interp draw.Interpolator
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithInterpolator sets the resampling kernel. The default is bilinear.
func WithInterpolator(interp draw.Interpolator) Option {
	return func(c *Canvas) {
		c.interp = interp
	}
}

// NewCanvas allocates a fully transparent canvas.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		ctm:    math.IdentityAffine(),
		stack:  make([]math.Affine, 0, 4),
		interp: draw.BiLinear,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFactory returns a Factory producing canvases with the given options.
func NewFactory(opts ...Option) Factory {
	return func(width, height int) Surface {
		return NewCanvas(width, height, opts...)
	}
}

// Interpolator resolves a config name to a kernel.
// Unknown names fall back to bilinear.
func Interpolator(name string) draw.Interpolator {
	switch name {
	case "nearest":
		return draw.NearestNeighbor
	case "approx-bilinear":
		return draw.ApproxBiLinear
	case "catmull-rom":
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.ctm)
}

// Restore is a no-op on an empty stack.
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.ctm = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

func (c *Canvas) Translate(x, y float64) {
	c.ctm = c.ctm.Mul(math.TranslateAffine(x, y))
}

func (c *Canvas) Rotate(angle float64) {
	c.ctm = c.ctm.Mul(math.RotateAffine(angle))
}

func (c *Canvas) Scale(x, y float64) {
	c.ctm = c.ctm.Mul(math.ScaleAffine(x, y))
}

func (c *Canvas) Transform() math.Affine {
	return c.ctm
}

// DrawImage composites img over the canvas. Source pixel space is mapped
// onto (x, y, w, h) in local space, then through the current transform.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if c.img == nil {
		return
	}
	sr := img.Bounds()
	if sr.Empty() || w == 0 || h == 0 {
		return
	}
	local := math.TranslateAffine(x, y).
		Mul(math.ScaleAffine(w/float64(sr.Dx()), h/float64(sr.Dy()))).
		Mul(math.TranslateAffine(-float64(sr.Min.X), -float64(sr.Min.Y)))
	s2d := c.ctm.Mul(local)
	if d, ok := integerTranslation(s2d); ok {
		draw.Copy(c.img, sr.Min.Add(d), img, sr, draw.Over, nil)
		return
	}
	c.interp.Transform(c.img, f64.Aff3(s2d), img, sr, draw.Over, nil)
}

// integerTranslation reports whether m only shifts by whole pixels.
// x/image's own shortcut for this case misplaces sources whose bounds do
// not start at the origin.
func integerTranslation(m math.Affine) (image.Point, bool) {
	if m[0] != 1 || m[1] != 0 || m[3] != 0 || m[4] != 1 {
		return image.Point{}, false
	}
	dx, dy := int(m[2]), int(m[5])
	if float64(dx) != m[2] || float64(dy) != m[5] {
		return image.Point{}, false
	}
	return image.Point{X: dx, Y: dy}, true
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Dispose drops the pixel buffer. Images returned earlier stay valid.
func (c *Canvas) Dispose() {
	c.img = nil
	c.stack = nil
}
