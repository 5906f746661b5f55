package compositor

import (
	gomath "math"

	"github.com/Faultbox/mgen/internal/mesh"
	"github.com/Faultbox/mgen/pkg/math"
)

// Placement is where and how a source image lands in the atlas.
type Placement struct {
	// Region is the screen sub-rectangle in atlas pixels.
	Region mesh.PixelRect
	// CenterX, CenterY is the region centre, also the image centre.
	CenterX, CenterY float64
	// ScaleX fits the image height to Region.W; ScaleY fits the image
	// width to Region.H. Scale is the smaller of the two.
	ScaleX, ScaleY, Scale float64
	// DrawW, DrawH are the scaled image dimensions before rotation.
	DrawW, DrawH float64
}

// Layout computes the contain placement of a w x h image inside the
// region of a texSize atlas. w and h must be positive.
func Layout(w, h int, region mesh.UVRegion, texSize int) Placement {
	r := region.PixelRect(texSize)
	cx, cy := r.Center()

	// After the quarter turn the image height runs along the region
	// width and the image width along the region height.
	scaleX := r.W / float64(h)
	scaleY := r.H / float64(w)
	scale := gomath.Min(scaleX, scaleY)

	return Placement{
		Region:  r,
		CenterX: cx,
		CenterY: cy,
		ScaleX:  scaleX,
		ScaleY:  scaleY,
		Scale:   scale,
		DrawW:   float64(w) * scale,
		DrawH:   float64(h) * scale,
	}
}

// Orientation is the transform applied around the region centre: a
// clockwise quarter turn followed by a mirror of local X. Together they
// map local (x, y) to (-y, -x), so the image top lands on the atlas +X
// edge (phone up) and the image left on the atlas +Y edge (phone left).
func Orientation() math.Affine {
	return math.RotateAffine(gomath.Pi / 2).Mul(math.ScaleAffine(-1, 1))
}

// Transform maps the image's local draw rectangle, centred on the
// origin, into atlas pixel space.
func (p Placement) Transform() math.Affine {
	return math.TranslateAffine(p.CenterX, p.CenterY).Mul(Orientation())
}

// Bounds returns the atlas-space bounding box of the drawn image.
func (p Placement) Bounds() (minX, minY, maxX, maxY float64) {
	return p.Transform().Bounds(-p.DrawW/2, -p.DrawH/2, p.DrawW/2, p.DrawH/2)
}

// Margins returns the letterbox slack on each atlas axis: the unused
// part of Region.W along X and of Region.H along Y.
func (p Placement) Margins() (x, y float64) {
	minX, minY, maxX, maxY := p.Bounds()
	return p.Region.W - (maxX - minX), p.Region.H - (maxY - minY)
}
