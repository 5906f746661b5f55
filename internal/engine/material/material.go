// Package material owns the phone screen material and is the only place
// that mutates it. Images are composited into an atlas, uploaded, and
// bound to both the albedo and emissive slots so the screen looks lit.
package material

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/Faultbox/mgen/internal/engine/texture"
)

// Color is a linear RGB triple in [0,1].
type Color struct {
	R, G, B float32
}

var (
	White = Color{1, 1, 1}
	Black = Color{}
)

// ParseColor parses "#rgb" or "#rrggbb". Hex values are sRGB and are
// converted to linear.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return Color{}, fmt.Errorf("material: bad colour %q", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Color{}, fmt.Errorf("material: bad colour %q", s)
		}
	}
	c := gg.Hex(hex)
	return Color{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B)}, nil
}

// srgbToLinear applies the inverse sRGB transfer function.
func srgbToLinear(v float64) float32 {
	if v <= 0.04045 {
		return float32(v / 12.92)
	}
	return float32(math.Pow((v+0.055)/1.055, 2.4))
}

// Screen is the state of the screen material as the renderer sees it.
// Map and EmissiveMap are the same texture when an image is shown and
// both nil when the screen is off.
type Screen struct {
	Map               texture.Handle
	EmissiveMap       texture.Handle
	Emissive          Color
	EmissiveIntensity float32
	// Version increments on every change so renderers can skip redundant
	// uniform updates.
	Version uint64
}

// Lit reports whether an image is bound.
func (s Screen) Lit() bool {
	return s.Map != nil
}
