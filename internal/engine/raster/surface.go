// Package raster provides the 2D scratch surface the compositor paints into.
//
// A Surface is allocated, drawn into through an affine transform stack,
// read back as pixels and disposed. Backends only need affine image
// drawing and pixel extraction.
package raster

import (
	"image"

	"github.com/Faultbox/mgen/pkg/math"
)

// Surface is a drawable raster with a canvas-style transform stack.
// Transform calls post-multiply the current matrix, so the last call is
// applied to drawn content first.
type Surface interface {
	// Save pushes the current transform.
	Save()
	// Restore pops the transform pushed by the matching Save.
	Restore()
	Translate(x, y float64)
	// Rotate turns by angle radians, clockwise for positive angles.
	Rotate(angle float64)
	Scale(x, y float64)
	// Transform returns the current transform.
	Transform() math.Affine
	// DrawImage draws img scaled into the local rectangle (x, y, w, h).
	DrawImage(img image.Image, x, y, w, h float64)
	// Image returns the surface pixels.
	Image() *image.RGBA
	// Dispose releases the backing buffer. The surface is unusable after.
	Dispose()
}

// Factory allocates a transparent surface of the given size.
type Factory func(width, height int) Surface
