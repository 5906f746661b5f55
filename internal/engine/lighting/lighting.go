// Package lighting describes the studio light rig around the phone.
package lighting

import "math"

// MaxDirectional is the number of directional lights the phone shader
// accepts.
const MaxDirectional = 4

// Directional is a light infinitely far away in Position's direction.
type Directional struct {
	Position  [3]float32 // Any point along the light direction
	Color     [3]float32
	Intensity float32
}

// Direction returns the unit vector pointing towards the light.
func (d Directional) Direction() [3]float32 {
	return normalize(d.Position)
}

// Rig is an ambient term plus a few directional lights.
type Rig struct {
	AmbientColor     [3]float32
	AmbientIntensity float32
	Directionals     []Directional
}

// DefaultRig is a soft key light from the upper right front and a weaker
// fill from the left.
func DefaultRig() Rig {
	white := [3]float32{1, 1, 1}
	return Rig{
		AmbientColor:     white,
		AmbientIntensity: 0.5,
		Directionals: []Directional{
			{Position: [3]float32{5, 5, 5}, Color: white, Intensity: 0.7},
			{Position: [3]float32{-3, 2, 4}, Color: white, Intensity: 0.3},
		},
	}
}

// Irradiance returns the Lambert lighting reaching a surface with the
// given normal, per channel. It mirrors the phone fragment shader.
func (r Rig) Irradiance(normal [3]float32) [3]float32 {
	n := normalize(normal)
	var out [3]float32
	for c := 0; c < 3; c++ {
		out[c] = r.AmbientColor[c] * r.AmbientIntensity
	}
	for i, d := range r.Directionals {
		if i == MaxDirectional {
			break
		}
		l := d.Direction()
		ndotl := n[0]*l[0] + n[1]*l[1] + n[2]*l[2]
		if ndotl <= 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			out[c] += d.Color[c] * d.Intensity * ndotl
		}
	}
	return out
}

// Uniforms flattens the directional lights for upload, padded to
// MaxDirectional entries.
func (r Rig) Uniforms() (dirs, colors [MaxDirectional * 3]float32, count int32) {
	for i, d := range r.Directionals {
		if i == MaxDirectional {
			break
		}
		dir := d.Direction()
		for c := 0; c < 3; c++ {
			dirs[i*3+c] = dir[c]
			colors[i*3+c] = d.Color[c] * d.Intensity
		}
		count++
	}
	return dirs, colors, count
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
