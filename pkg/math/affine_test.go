package math

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAffineIdentity(t *testing.T) {
	x, y := IdentityAffine().Apply(3, -4)
	if x != 3 || y != -4 {
		t.Errorf("Identity.Apply(3, -4) = (%v, %v), want (3, -4)", x, y)
	}
}

func TestRotateAffineQuarterTurn(t *testing.T) {
	m := RotateAffine(math.Pi / 2)
	// Exact entries, no trig noise.
	want := Affine{0, -1, 0, 1, 0, 0}
	if m != want {
		t.Fatalf("RotateAffine(pi/2) = %v, want %v", m, want)
	}

	// y-down space: +X turns into +Y (clockwise on screen).
	x, y := m.Apply(1, 0)
	if x != 0 || y != 1 {
		t.Errorf("rotate (1,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestAffineMulOrder(t *testing.T) {
	// Translate then scale differs from scale then translate.
	ts := TranslateAffine(10, 0).Mul(ScaleAffine(2, 2))
	x, _ := ts.Apply(1, 0)
	if x != 12 {
		t.Errorf("T*S applied to (1,0): x = %v, want 12", x)
	}

	st := ScaleAffine(2, 2).Mul(TranslateAffine(10, 0))
	x, _ = st.Apply(1, 0)
	if x != 22 {
		t.Errorf("S*T applied to (1,0): x = %v, want 22", x)
	}
}

func TestAffineRotateMirror(t *testing.T) {
	// Rotate a quarter turn, then mirror local X: (x, y) -> (-y, -x).
	m := RotateAffine(math.Pi / 2).Mul(ScaleAffine(-1, 1))
	tests := []struct {
		in, want [2]float64
	}{
		{[2]float64{1, 0}, [2]float64{0, -1}},
		{[2]float64{0, 1}, [2]float64{-1, 0}},
		{[2]float64{2, 3}, [2]float64{-3, -2}},
	}
	for _, tt := range tests {
		x, y := m.Apply(tt.in[0], tt.in[1])
		if !approx(x, tt.want[0]) || !approx(y, tt.want[1]) {
			t.Errorf("Apply(%v) = (%v, %v), want %v", tt.in, x, y, tt.want)
		}
	}
	if m.Det() != -1 {
		t.Errorf("Det() = %v, want -1 (orientation reversing)", m.Det())
	}
}

func TestAffineInvert(t *testing.T) {
	m := TranslateAffine(5, 7).Mul(RotateAffine(0.3)).Mul(ScaleAffine(2, -3))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected invertible transform")
	}
	x, y := m.Apply(1.5, -2.5)
	bx, by := inv.Apply(x, y)
	if !approx(bx, 1.5) || !approx(by, -2.5) {
		t.Errorf("round trip = (%v, %v), want (1.5, -2.5)", bx, by)
	}

	if _, ok := ScaleAffine(0, 1).Invert(); ok {
		t.Error("expected singular transform to report ok=false")
	}
}

func TestAffineBounds(t *testing.T) {
	m := TranslateAffine(100, 50).Mul(RotateAffine(math.Pi / 2))
	minX, minY, maxX, maxY := m.Bounds(-20, -10, 20, 10)
	if !approx(minX, 90) || !approx(maxX, 110) || !approx(minY, 30) || !approx(maxY, 70) {
		t.Errorf("Bounds = (%v, %v, %v, %v), want (90, 30, 110, 70)", minX, minY, maxX, maxY)
	}
}
