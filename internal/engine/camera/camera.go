// Package camera provides the orbit camera used to inspect the phone.
package camera

import (
	gomath "math"

	"github.com/Faultbox/mgen/pkg/math"
)

// Defaults for framing the reference phone.
const (
	DefaultFOV      = 35 * gomath.Pi / 180
	DefaultDistance = 7
	MinDistance     = 1.5
	MaxDistance     = 7
	MinPolar        = gomath.Pi / 6
	MaxPolar        = 5 * gomath.Pi / 6
)

// OrbitCamera orbits the origin on a sphere. Panning is not supported:
// the phone always stays centred.
type OrbitCamera struct {
	// Spherical coordinates
	Distance float32 // Distance from the origin
	Polar    float32 // Angle from +Y, radians
	Azimuth  float32 // Angle around +Y from +Z, radians

	// Projection
	FOV       float32 // Vertical field of view, radians
	Near, Far float32
	Aspect    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera looking at the phone face from +Z.
func NewOrbitCamera(aspect float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        DefaultDistance,
		Polar:           gomath.Pi / 2,
		Azimuth:         0,
		FOV:             DefaultFOV,
		Near:            0.1,
		Far:             100,
		Aspect:          aspect,
		MinDistance:     MinDistance,
		MaxDistance:     MaxDistance,
		MinPolar:        MinPolar,
		MaxPolar:        MaxPolar,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinP, cosP := gomath.Sincos(float64(c.Polar))
	sinA, cosA := gomath.Sincos(float64(c.Azimuth))
	return math.Vec3{
		X: c.Distance * float32(sinP*sinA),
		Y: c.Distance * float32(cosP),
		Z: c.Distance * float32(sinP*cosA),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), math.Vec3{}, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// SetAspect updates the aspect ratio after a resize.
func (c *OrbitCamera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// HandleDrag rotates the camera by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Azimuth -= deltaX * c.DragSensitivity
	c.Polar -= deltaY * c.DragSensitivity
	c.Polar = clamp(c.Polar, c.MinPolar, c.MaxPolar)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Reset restores the initial framing.
func (c *OrbitCamera) Reset() {
	c.Distance = DefaultDistance
	c.Polar = gomath.Pi / 2
	c.Azimuth = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
