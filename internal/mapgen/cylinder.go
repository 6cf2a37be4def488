package mapgen

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var capColor = mgl32.Vec3{1, 0.6, 0.4}

// GenerateCylinder builds a capped cylinder centered on the origin along +Y.
//
// The side is heightSamples rings of circleSamples vertices each. The color channel does
// not hold RGB: it carries (1-s, t, s) where s is the ring fraction and t the angle
// fraction, which the branch shader reads. Caps are triangle fans around two extra center
// vertices placed after the rings.
func GenerateCylinder(height, radius float32, heightSamples, circleSamples int) (Mesh, error) {
	if heightSamples < 2 || circleSamples < 3 || height <= 0 || radius <= 0 {
		return Mesh{}, fmt.Errorf("cylinder %dx%d: %w", heightSamples, circleSamples, ErrInvalidSize)
	}
	ringCount := heightSamples * circleSamples
	top, bottom := ringCount, ringCount+1
	vertices := make([]float32, (ringCount+2)*VertexSize)

	for i := 0; i < heightSamples; i++ {
		s := float32(i) / float32(heightSamples)
		y := (s - 0.5) * height
		for j := 0; j < circleSamples; j++ {
			t := float32(j) / float32(circleSamples)
			theta := 2 * math32.Pi * t
			cos, sin := math32.Cos(theta), math32.Sin(theta)
			putVertex(vertices, i*circleSamples+j,
				mgl32.Vec3{cos * radius, y, sin * radius},
				mgl32.Vec3{cos, 0, sin},
				mgl32.Vec3{1 - s, t, s},
				mgl32.Vec2{s, t},
			)
		}
	}
	topY := height*float32(heightSamples-1)/float32(heightSamples) - height*0.5
	putVertex(vertices, top, mgl32.Vec3{0, topY, 0}, mgl32.Vec3{0, 1, 0}, capColor, mgl32.Vec2{})
	putVertex(vertices, bottom, mgl32.Vec3{0, -0.5 * height, 0}, mgl32.Vec3{0, -1, 0}, capColor, mgl32.Vec2{})

	side := (heightSamples - 1) * circleSamples * 6
	indices := make([]uint32, 0, side+circleSamples*6)
	for i := 0; i < heightSamples-1; i++ {
		for j := 0; j < circleSamples; j++ {
			next := (i + 1) % heightSamples
			around := (j + 1) % circleSamples
			indices = append(indices,
				uint32(next*circleSamples+j), uint32(i*circleSamples+around), uint32(i*circleSamples+j),
				uint32(next*circleSamples+j), uint32(next*circleSamples+around), uint32(i*circleSamples+around),
			)
		}
	}
	last := (heightSamples - 1) * circleSamples
	for j := 0; j < circleSamples; j++ {
		indices = append(indices,
			uint32(last+j), uint32(top), uint32(last+(j+1)%circleSamples),
		)
	}
	// bottom fan is wound the other way so it faces down
	for j := 0; j < circleSamples; j++ {
		indices = append(indices,
			uint32((j+1)%circleSamples), uint32(bottom), uint32(j),
		)
	}
	return Mesh{Vertices: vertices, Indices: indices}, nil
}
