// Package compositor paints a source image into the screen region of the
// phone's texture atlas.
//
// The screen mesh samples the atlas with X along the physical screen
// height and Y along its width, with V running right to left on the
// rendered phone. The compositor rotates and mirrors the image to undo
// that mapping and scales it with a contain policy: the whole image is
// visible, undistorted, letterboxed along the axis with slack.
package compositor

import (
	"errors"
	"fmt"
	"image"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/engine/raster"
	"github.com/Faultbox/mgen/internal/engine/texture"
	"github.com/Faultbox/mgen/internal/mesh"
)

// DefaultTexSize is the atlas side used by the reference asset.
const DefaultTexSize = 8192

var (
	// ErrEmptyImage is returned for an image with zero width or height.
	ErrEmptyImage = errors.New("source image has no pixels")
	// ErrTexSize is returned when the atlas side is not a positive power of two.
	ErrTexSize = errors.New("texture size must be a positive power of two")
)

// Options configures Composite.
type Options struct {
	TexSize  int
	Surfaces raster.Factory
	Sampling texture.Sampling
	Logger   *zap.Logger
}

// DefaultOptions returns the reference atlas configuration.
func DefaultOptions() Options {
	return Options{
		TexSize:  DefaultTexSize,
		Surfaces: raster.NewFactory(),
		Sampling: texture.ScreenSampling(16),
	}
}

// Result is a populated atlas ready for upload.
type Result struct {
	Atlas     *image.RGBA
	Placement Placement
	Sampling  texture.Sampling
}

// Composite draws img into a fresh atlas at the placement computed by
// Layout. It runs to completion synchronously.
func Composite(img image.Image, region mesh.UVRegion, opts Options) (*Result, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if !isPowerOfTwo(opts.TexSize) {
		return nil, fmt.Errorf("%w: %d", ErrTexSize, opts.TexSize)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	if opts.Surfaces == nil {
		opts.Surfaces = raster.NewFactory()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := Layout(b.Dx(), b.Dy(), region, opts.TexSize)

	s := opts.Surfaces(opts.TexSize, opts.TexSize)
	defer s.Dispose()

	s.Save()
	s.Translate(p.CenterX, p.CenterY)
	s.Rotate(math.Pi / 2)
	s.Scale(-1, 1)
	s.DrawImage(img, -p.DrawW/2, -p.DrawH/2, p.DrawW, p.DrawH)
	s.Restore()

	log.Debug("composited screen texture",
		zap.Int("src_w", b.Dx()),
		zap.Int("src_h", b.Dy()),
		zap.Int("tex_size", opts.TexSize),
		zap.Float64("scale", p.Scale),
		zap.Float64("draw_w", p.DrawW),
		zap.Float64("draw_h", p.DrawH),
	)

	sampling := opts.Sampling
	sampling.FlipY = false

	return &Result{
		Atlas:     s.Image(),
		Placement: p,
		Sampling:  sampling,
	}, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
