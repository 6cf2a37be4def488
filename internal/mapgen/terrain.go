package mapgen

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Terrain shape constants. The island is a dome centered on the grid whose radius is
// islandRadius grid units, roughened by up to perturbation units of hashed noise.
const (
	islandRadius   = 20.0
	perturbation   = 1.25
	falloffPower   = 0.9
	heightDivisor  = 4.0
	normalMarginLo = 32 // normals are rebuilt only for margin < i < dim-normalMarginHi
	normalMarginHi = 33
)

var terrainColor = mgl32.Vec3{0, 1, 0}

// Terrain is a square heightfield of Dim x Dim samples, one per world unit on X/Z.
// It is read-only after NewTerrain.
type Terrain struct {
	Dim     int
	heights []float32 // heights[x*Dim+z]
}

// NewTerrain builds the heightfield. Seed drives the per-sample perturbation.
func NewTerrain(dim int, seed int64) (*Terrain, error) {
	if dim < 2 {
		return nil, fmt.Errorf("terrain dimension %d: %w", dim, ErrInvalidSize)
	}
	t := &Terrain{Dim: dim, heights: make([]float32, dim*dim)}
	center := mgl32.Vec2{float32(dim) / 2, float32(dim) / 2}
	for x := 0; x < dim; x++ {
		for z := 0; z < dim; z++ {
			r := hash2D(int32(x), int32(z), int32(seed))
			dist := center.Sub(mgl32.Vec2{float32(x), float32(z)}).Len()
			h := 2 * math32.Pow(math32.Max(0, islandRadius-(dist-perturbation*r)), falloffPower)
			t.heights[x*dim+z] = h / heightDivisor
		}
	}
	return t, nil
}

// Height returns the stored sample at grid point (x, z). Indices must be in range.
func (t *Terrain) Height(x, z int) float32 {
	return t.heights[x*t.Dim+z]
}

// HeightAt returns the bilinearly interpolated height at world (x, z). Outside [0, Dim)
// on either axis it returns 0. At integer coordinates it returns the stored sample exactly.
func (t *Terrain) HeightAt(x, z float32) float32 {
	limit := float32(t.Dim)
	if x < 0 || x >= limit || z < 0 || z >= limit {
		return 0
	}
	x1, z1 := int(math32.Floor(x)), int(math32.Floor(z))
	x2, z2 := min(int(math32.Ceil(x)), t.Dim-1), min(int(math32.Ceil(z)), t.Dim-1)
	fx, fz := x-float32(x1), z-float32(z1)

	h1 := lerp(t.Height(x1, z1), t.Height(x2, z1), fx)
	h2 := lerp(t.Height(x1, z2), t.Height(x2, z2), fx)
	return lerp(h1, h2, fz)
}

// Mesh builds the renderable grid: one vertex per sample at (x, h, z), two triangles per
// quad. Index generation wraps with modulo at the far edges, which yields a degenerate seam
// rather than out-of-range indices.
func (t *Terrain) Mesh() Mesh {
	dim := t.Dim
	vertices := make([]float32, dim*dim*VertexSize)
	for z := 0; z < dim; z++ {
		for x := 0; x < dim; x++ {
			pos := t.point(x, z)
			uv := mgl32.Vec2{float32(x) / 2, float32(z) / 2}
			putVertex(vertices, z*dim+x, pos, t.normal(x, z), terrainColor, uv)
		}
	}

	indices := make([]uint32, 0, (dim-1)*(dim-1)*6)
	for z := 0; z < dim-1; z++ {
		for x := 0; x < dim-1; x++ {
			next := (z + 1) % dim
			right := (x + 1) % dim
			indices = append(indices,
				uint32(next*dim+x), uint32(z*dim+right), uint32(z*dim+x),
				uint32(next*dim+x), uint32(next*dim+right), uint32(z*dim+right),
			)
		}
	}
	return Mesh{Vertices: vertices, Indices: indices}
}

func (t *Terrain) point(x, z int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), t.Height(x, z), float32(z)}
}

// normal averages the cross products of four triangles fanned around (x, z). Samples
// outside the interior rectangle keep the up vector.
func (t *Terrain) normal(x, z int) mgl32.Vec3 {
	lo, hi := normalMarginLo, t.Dim-normalMarginHi
	if x <= lo || x >= hi || z <= lo || z >= hi {
		return mgl32.Vec3{0, 1, 0}
	}
	p := t.point(x, z)
	fan := [4][2][2]int{
		{{x + 1, z}, {x + 1, z + 1}},
		{{x, z + 1}, {x - 1, z + 1}},
		{{x - 1, z}, {x - 1, z - 1}},
		{{x, z - 1}, {x + 1, z - 1}},
	}
	var sum mgl32.Vec3
	for _, tri := range fan {
		a := t.point(tri[0][0], tri[0][1]).Sub(p)
		b := t.point(tri[1][0], tri[1][1]).Sub(p)
		sum = sum.Add(b.Cross(a))
	}
	return sum.Normalize()
}
