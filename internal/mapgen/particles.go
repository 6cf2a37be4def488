package mapgen

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Spawn radius of the spherical particle sets.
const particleRadius = 0.2

// Particle generators store per-particle animation inputs in the normal and color
// channels. The shaders animate each particle as a function of those values and time.

// FountainParticles samples n directions uniformly on the unit sphere. The normal holds the
// direction, the position sits particleRadius along it, and every color channel holds the
// phase i/n.
func FountainParticles(n int, rng Rand) (PointSet, error) {
	if n <= 0 {
		return PointSet{}, fmt.Errorf("fountain particles %d: %w", n, ErrInvalidSize)
	}
	vertices := make([]float32, n*VertexSize)
	for i := 0; i < n; i++ {
		u, v := rng.Float32(), rng.Float32()
		theta := u * 2 * math32.Pi
		phi := math32.Acos(2*v - 1)
		normal := mgl32.Vec3{
			math32.Sin(theta) * math32.Cos(phi),
			math32.Cos(theta),
			math32.Sin(theta) * math32.Sin(phi),
		}
		phase := float32(i) / float32(n)
		putVertex(vertices, i, normal.Mul(particleRadius), normal, mgl32.Vec3{phase, phase, phase}, mgl32.Vec2{})
	}
	return PointSet{Vertices: vertices}, nil
}

// MonsterParticles samples n points on a small sphere around the monster using an
// inverse-CDF latitude. The red channel holds the particle index.
func MonsterParticles(n int, rng Rand) (PointSet, error) {
	if n <= 0 {
		return PointSet{}, fmt.Errorf("monster particles %d: %w", n, ErrInvalidSize)
	}
	vertices := make([]float32, n*VertexSize)
	for i := 0; i < n; i++ {
		lat := math32.Acos(2*rng.Float32()-1) - 2*math32.Pi
		lon := 2 * math32.Pi * rng.Float32()
		pos := mgl32.Vec3{
			math32.Cos(lat) * math32.Cos(lon),
			math32.Cos(lat) * math32.Sin(lon),
			math32.Sin(lat),
		}.Mul(particleRadius)
		putVertex(vertices, i, pos, mgl32.Vec3{}, mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec2{})
	}
	return PointSet{Vertices: vertices}, nil
}

// LeafParticles samples n points uniformly on a disk of radius 5, each lifted by up to 0.5.
// Normals point down and the red channel holds the particle index.
func LeafParticles(n int, rng Rand) (PointSet, error) {
	if n <= 0 {
		return PointSet{}, fmt.Errorf("leaf particles %d: %w", n, ErrInvalidSize)
	}
	const diskRadius = 5
	vertices := make([]float32, n*VertexSize)
	for i := 0; i < n; i++ {
		r := diskRadius * math32.Sqrt(rng.Float32())
		theta := rng.Float32() * 2 * math32.Pi
		y := rng.Float32() * 0.5
		pos := mgl32.Vec3{r * math32.Cos(theta), y, r * math32.Sin(theta)}
		putVertex(vertices, i, pos, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec2{})
	}
	return PointSet{Vertices: vertices}, nil
}

// LineParticles places n points evenly on a vertical line from y=2 down towards y=-2.
// The red channel holds the particle index.
func LineParticles(n int) (PointSet, error) {
	if n <= 0 {
		return PointSet{}, fmt.Errorf("line particles %d: %w", n, ErrInvalidSize)
	}
	vertices := make([]float32, n*VertexSize)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{0, 2 - float32(i)/float32(n)*4, 0}
		putVertex(vertices, i, pos, mgl32.Vec3{}, mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec2{})
	}
	return PointSet{Vertices: vertices}, nil
}
