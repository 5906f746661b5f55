package scene

import (
	"github.com/Faultbox/mgen/internal/mesh"
)

// Model units are millimetres; WorldScale brings the phone to a size that
// fills the default camera frame.
const WorldScale = 0.02

// Body proportions around the screen, in model units.
const (
	BezelSide   = 4.0
	BezelTop    = 8.0
	BodyDepth   = 8.0
	screenInset = 0.05 // Screen sits just above the body face
)

// Vertex is an interleaved position, normal and texture coordinate.
type Vertex struct {
	Pos    [3]float32
	Normal [3]float32
	UV     [2]float32
}

// VertexSize is the byte size of one Vertex.
const VertexSize = 8 * 4

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// ScreenQuad builds the screen rectangle facing +Z. Its texture
// coordinates span region with U running bottom to top and V running right
// to left, matching how the phone asset is unwrapped.
func ScreenQuad(screen mesh.Screen, region mesh.UVRegion) Mesh {
	hw := float32(screen.Width * WorldScale / 2)
	hh := float32(screen.Height * WorldScale / 2)
	z := float32((BodyDepth/2 + screenInset) * WorldScale)

	uMin, uMax := float32(region.UMin), float32(region.UMax)
	vMin, vMax := float32(region.VMin), float32(region.VMax)
	n := [3]float32{0, 0, 1}

	return Mesh{
		Vertices: []Vertex{
			{Pos: [3]float32{-hw, -hh, z}, Normal: n, UV: [2]float32{uMin, vMax}}, // bottom left
			{Pos: [3]float32{hw, -hh, z}, Normal: n, UV: [2]float32{uMin, vMin}},  // bottom right
			{Pos: [3]float32{hw, hh, z}, Normal: n, UV: [2]float32{uMax, vMin}},   // top right
			{Pos: [3]float32{-hw, hh, z}, Normal: n, UV: [2]float32{uMax, vMax}},  // top left
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// BodyBox builds the phone slab behind the screen.
func BodyBox(screen mesh.Screen) Mesh {
	hw := float32((screen.Width/2 + BezelSide) * WorldScale)
	hh := float32((screen.Height/2 + BezelTop) * WorldScale)
	hd := float32(BodyDepth / 2 * WorldScale)
	return box(hw, hh, hd)
}

// box returns an axis-aligned box with per-face normals.
func box(hw, hh, hd float32) Mesh {
	type face struct {
		n       [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
	}

	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Pos: c, Normal: f.n})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Flatten interleaves vertices for a GL array buffer.
func (m Mesh) Flatten() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out, v.Pos[0], v.Pos[1], v.Pos[2], v.Normal[0], v.Normal[1], v.Normal[2], v.UV[0], v.UV[1])
	}
	return out
}

// backgroundQuad covers clip space; texture row 0 (the gradient top) maps
// to the top of the viewport.
var backgroundQuad = []float32{
	// x, y, u, v
	-1, -1, 0.5, 1,
	1, -1, 0.5, 1,
	1, 1, 0.5, 0,
	-1, -1, 0.5, 1,
	1, 1, 0.5, 0,
	-1, 1, 0.5, 0,
}
