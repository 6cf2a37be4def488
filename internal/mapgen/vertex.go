package mapgen

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexSize is the number of float32 attributes per vertex shared by every generated
// buffer: position (3), normal (3), color (3), texture coordinates (2).
// Several generators repurpose normal and color to carry per-particle parameters.
const VertexSize = 11

// Attribute offsets inside one vertex, in floats.
const (
	PositionOffset = 0
	NormalOffset   = 3
	ColorOffset    = 6
	UVOffset       = 9
)

// ErrInvalidSize is returned when a generator is asked for an empty or degenerate shape.
var ErrInvalidSize = errors.New("mapgen: invalid size")

// Rand is the random source used by the generators. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float32() float32
	IntN(n int) int
}

// Mesh is indexed triangle data in the VertexSize layout.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices stored in m.
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / VertexSize
}

// Position returns the position of vertex i.
func (m Mesh) Position(i int) mgl32.Vec3 {
	return readVec3(m.Vertices, i, PositionOffset)
}

// Normal returns the normal of vertex i.
func (m Mesh) Normal(i int) mgl32.Vec3 {
	return readVec3(m.Vertices, i, NormalOffset)
}

// Color returns the color channel of vertex i.
func (m Mesh) Color(i int) mgl32.Vec3 {
	return readVec3(m.Vertices, i, ColorOffset)
}

// PointSet is unindexed point data in the VertexSize layout, drawn as a point list.
type PointSet struct {
	Vertices []float32
}

// Count returns the number of points.
func (p PointSet) Count() int {
	return len(p.Vertices) / VertexSize
}

// Position returns the position of point i.
func (p PointSet) Position(i int) mgl32.Vec3 {
	return readVec3(p.Vertices, i, PositionOffset)
}

// Normal returns the normal channel of point i.
func (p PointSet) Normal(i int) mgl32.Vec3 {
	return readVec3(p.Vertices, i, NormalOffset)
}

// Color returns the color channel of point i.
func (p PointSet) Color(i int) mgl32.Vec3 {
	return readVec3(p.Vertices, i, ColorOffset)
}

func putVertex(dst []float32, i int, pos, normal, color mgl32.Vec3, uv mgl32.Vec2) {
	base := i * VertexSize
	copy(dst[base+PositionOffset:], pos[:])
	copy(dst[base+NormalOffset:], normal[:])
	copy(dst[base+ColorOffset:], color[:])
	copy(dst[base+UVOffset:], uv[:])
}

func readVec3(src []float32, i, offset int) mgl32.Vec3 {
	base := i*VertexSize + offset
	return mgl32.Vec3{src[base], src[base+1], src[base+2]}
}
