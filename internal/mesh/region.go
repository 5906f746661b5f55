// Package mesh describes the fixed geometry of the phone asset: the UV
// sub-rectangle its screen samples and the physical screen size.
package mesh

import (
	"errors"
	"fmt"
	"math"
)

// Reference screen UV bounds extracted from the phone asset.
// U runs along the physical screen height, V along its width.
const (
	RefUMin = 0.184886
	RefUMax = 0.524024
	RefVMin = 0.438856
	RefVMax = 0.601318
)

// Physical screen size in mesh-local units.
const (
	RefScreenWidth  = 76.414
	RefScreenHeight = 159.514
)

// ErrInvalidRegion is returned when a UV region violates its bounds.
var ErrInvalidRegion = errors.New("invalid UV region")

// UVRegion is the screen sub-rectangle inside the mesh's UV
// parametrization. The axis mapping is mesh specific: U follows the
// screen height, V follows the screen width and increases right to left
// on the rendered phone.
type UVRegion struct {
	UMin float64 `yaml:"u_min"`
	UMax float64 `yaml:"u_max"`
	VMin float64 `yaml:"v_min"`
	VMax float64 `yaml:"v_max"`
}

// Reference returns the UV region of the bundled phone asset.
func Reference() UVRegion {
	return UVRegion{UMin: RefUMin, UMax: RefUMax, VMin: RefVMin, VMax: RefVMax}
}

// URange returns UMax - UMin.
func (r UVRegion) URange() float64 { return r.UMax - r.UMin }

// VRange returns VMax - VMin.
func (r UVRegion) VRange() float64 { return r.VMax - r.VMin }

// Validate checks 0 <= min < max <= 1 on both axes.
func (r UVRegion) Validate() error {
	for _, v := range []float64{r.UMin, r.UMax, r.VMin, r.VMax} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: bound %v outside [0,1]", ErrInvalidRegion, v)
		}
	}
	if r.UMin >= r.UMax {
		return fmt.Errorf("%w: u_min %v >= u_max %v", ErrInvalidRegion, r.UMin, r.UMax)
	}
	if r.VMin >= r.VMax {
		return fmt.Errorf("%w: v_min %v >= v_max %v", ErrInvalidRegion, r.VMin, r.VMax)
	}
	return nil
}

// PixelRect is a floating-point rectangle in atlas pixel space.
type PixelRect struct {
	X, Y, W, H float64
}

// Center returns the rectangle centre.
func (p PixelRect) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// PixelRect maps the region into a square atlas of side texSize. The
// atlas is not flipped, so X follows U and Y follows V directly.
func (r UVRegion) PixelRect(texSize int) PixelRect {
	s := float64(texSize)
	return PixelRect{
		X: r.UMin * s,
		Y: r.VMin * s,
		W: r.URange() * s,
		H: r.VRange() * s,
	}
}

// Screen is the physical size of the phone screen in mesh-local units.
type Screen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ReferenceScreen returns the screen size of the bundled phone asset.
func ReferenceScreen() Screen {
	return Screen{Width: RefScreenWidth, Height: RefScreenHeight}
}

// Aspect returns width / height.
func (s Screen) Aspect() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}
