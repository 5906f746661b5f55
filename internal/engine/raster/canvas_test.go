package raster

import (
	"image"
	"image/color"
	gomath "math"
	"testing"

	"golang.org/x/image/draw"

	"github.com/Faultbox/mgen/pkg/math"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// twoTone returns a 2x1 image: red on the left, blue on the right.
func twoTone() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, blue)
	return img
}

func TestNewCanvasTransparent(t *testing.T) {
	c := NewCanvas(4, 3)
	img := c.Image()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("expected 4x3 canvas, got %v", img.Bounds())
	}
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("expected a fully transparent canvas")
		}
	}
}

func TestSaveRestore(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Save()
	c.Translate(3, 4)
	c.Rotate(1)
	if c.Transform() == math.IdentityAffine() {
		t.Fatal("expected transform to change")
	}
	c.Restore()
	if c.Transform() != math.IdentityAffine() {
		t.Errorf("expected identity after Restore, got %v", c.Transform())
	}

	// Unbalanced Restore keeps the current transform.
	c.Scale(2, 2)
	c.Restore()
	if c.Transform() != math.ScaleAffine(2, 2) {
		t.Errorf("expected scale to survive empty Restore, got %v", c.Transform())
	}
}

func TestDrawImageScaled(t *testing.T) {
	c := NewCanvas(4, 2, WithInterpolator(draw.NearestNeighbor))
	c.DrawImage(twoTone(), 0, 0, 4, 2)

	img := c.Image()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := red
			if x >= 2 {
				want = blue
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestDrawImageRotated(t *testing.T) {
	c := NewCanvas(10, 10, WithInterpolator(draw.NearestNeighbor))
	c.Translate(5, 5)
	c.Rotate(gomath.Pi / 2)
	c.DrawImage(twoTone(), -2, -1, 4, 2)

	img := c.Image()
	// A clockwise quarter turn moves the left half above the centre.
	if got := img.RGBAAt(4, 3); got != red {
		t.Errorf("expected red above centre, got %v", got)
	}
	if got := img.RGBAAt(5, 6); got != blue {
		t.Errorf("expected blue below centre, got %v", got)
	}
	// Drawn box is 2 wide and 4 tall; outside stays transparent.
	if got := img.RGBAAt(3, 5); got.A != 0 {
		t.Errorf("expected transparent outside rotated box, got %v", got)
	}
	if got := img.RGBAAt(5, 2); got.A != 0 {
		t.Errorf("expected transparent above rotated box, got %v", got)
	}
}

func TestDrawImageOffsetBounds(t *testing.T) {
	// Sub-images keep their absolute bounds; drawing must honour Min.
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(2, 1, red)
	src.SetRGBA(3, 1, blue)
	sub := src.SubImage(image.Rect(2, 1, 4, 2))

	tests := []struct {
		name   string
		interp draw.Interpolator
		dx, dy float64
	}{
		{"nearest at origin", draw.NearestNeighbor, 0, 0},
		{"nearest translated", draw.NearestNeighbor, 1, 2},
		{"approx bilinear translated", draw.ApproxBiLinear, 1, 2},
		{"bilinear translated", draw.BiLinear, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(4, 4, WithInterpolator(tt.interp))
			c.Translate(tt.dx, tt.dy)
			c.DrawImage(sub, 0, 0, 2, 1)
			x, y := int(tt.dx), int(tt.dy)
			if got := c.Image().RGBAAt(x, y); got != red {
				t.Errorf("expected red at (%d,%d), got %v", x, y, got)
			}
			if got := c.Image().RGBAAt(x+1, y); got != blue {
				t.Errorf("expected blue at (%d,%d), got %v", x+1, y, got)
			}
			opaque := 0
			for i := 3; i < len(c.Image().Pix); i += 4 {
				if c.Image().Pix[i] != 0 {
					opaque++
				}
			}
			if opaque != 2 {
				t.Errorf("expected 2 drawn pixels, got %d", opaque)
			}
		})
	}
}

func TestDispose(t *testing.T) {
	c := NewCanvas(2, 2)
	kept := c.Image()
	c.Dispose()
	if c.Image() != nil {
		t.Error("expected nil image after Dispose")
	}
	// Drawing after Dispose must not panic.
	c.DrawImage(twoTone(), 0, 0, 2, 2)
	if kept.Bounds().Dx() != 2 {
		t.Error("previously returned image should remain valid")
	}
}

func TestInterpolator(t *testing.T) {
	tests := []struct {
		name string
		want draw.Interpolator
	}{
		{"nearest", draw.NearestNeighbor},
		{"approx-bilinear", draw.ApproxBiLinear},
		{"catmull-rom", draw.CatmullRom},
		{"bilinear", draw.BiLinear},
		{"", draw.BiLinear},
	}
	for _, tt := range tests {
		if got := Interpolator(tt.name); got != tt.want {
			t.Errorf("Interpolator(%q): unexpected kernel", tt.name)
		}
	}
}

func TestFactory(t *testing.T) {
	s := NewFactory()(8, 8)
	if _, ok := s.(*Canvas); !ok {
		t.Fatalf("expected *Canvas, got %T", s)
	}
	if s.Image().Bounds().Dx() != 8 {
		t.Errorf("expected 8px wide surface, got %d", s.Image().Bounds().Dx())
	}
}
