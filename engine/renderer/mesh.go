package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh vertex as laid out in the vertex buffer (24 bytes).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// VertexStride is the byte size of a Vertex.
const VertexStride = 24

// Mesh is indexed triangle-list geometry.
type Mesh struct {
	Label    string
	Vertices []Vertex
	Indices  []uint32
}

// VertexBytes returns the vertex data ready for upload.
func (m Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data ready for upload.
func (m Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// UnitQuad returns a 1x1 quad centred on the origin in the XY plane, facing -Z.
func UnitQuad() Mesh {
	n := mgl32.Vec3{0, 0, -1}
	return Mesh{
		Label: "Ground Tile",
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: n},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: n},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: n},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: n},
		},
		Indices: []uint32{0, 1, 3, 1, 2, 3},
	}
}

// cubeFaces lists each face as its outward normal and the two in-plane axes
// spanning it, ordered so that u x v = normal.
var cubeFaces = [6]struct{ normal, u, v mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
}

// UnitCube returns a cube of side 1 centred on the origin with per-face normals
// and counter-clockwise outward winding.
func UnitCube() Mesh {
	return cube("Proxy Box", 0.5)
}

// SkyCube returns the ±1 cube drawn around the eye for the sky.
func SkyCube() Mesh {
	return cube("Sky Cube", 1)
}

func cube(label string, half float32) Mesh {
	m := Mesh{
		Label:    label,
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		centre := f.normal.Mul(half)
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := centre.Add(f.u.Mul(c[0] * half)).Add(f.v.Mul(c[1] * half))
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
