package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    [3]float32
		want [3]float32
	}{
		{"translate", Translate(10, 20, 30), [3]float32{1, 2, 3}, [3]float32{11, 22, 33}},
		{"scale", Scale(2, 2, 2), [3]float32{1, 2, 3}, [3]float32{2, 4, 6}},
		{"translate after scale", Translate(0, -0.17, 0).Mul(Scale(0.1, 0.1, 0.1)), [3]float32{0, 10, 0}, [3]float32{0, 0.83, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			for i := range got {
				if abs(got[i]-tt.want[i]) > 1e-5 {
					t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint([3]float32{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(35*math.Pi/180), 16.0/9.0, 0.1, 100)

	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	// Horizontal focal length is vertical divided by aspect.
	if abs(m[0]*16.0/9.0-m[5]) > 1e-4 {
		t.Errorf("expected m[0]*aspect == m[5], got %f vs %f", m[0]*16.0/9.0, m[5])
	}
}

func TestLookAt(t *testing.T) {
	// Default mockup camera: seven units in front of the phone.
	m := LookAt(Vec3{0, 0, 7}, Vec3{}, Vec3{0, 1, 0})

	got := m.TransformPoint([3]float32{0, 0, 0})
	if abs(got[0]) > 1e-5 || abs(got[1]) > 1e-5 || abs(got[2]+7) > 1e-5 {
		t.Errorf("origin in view space: got %v, want (0, 0, -7)", got)
	}
}

func TestMat3x3(t *testing.T) {
	m := Translate(4, 5, 6).Mul(RotateY(0.5))
	n := m.Mat3x3()
	r := RotateY(0.5)
	want := [9]float32{r[0], r[1], r[2], r[4], r[5], r[6], r[8], r[9], r[10]}
	if n != want {
		t.Errorf("Mat3x3 should drop translation: got %v, want %v", n, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
