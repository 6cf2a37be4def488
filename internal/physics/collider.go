package physics

import "github.com/go-gl/mathgl/mgl32"

// Collider blocks part of the ground plane. Positions are (x, z) pairs.
type Collider interface {
	Blocks(p mgl32.Vec2) bool
}

// Circle blocks every point closer than Radius to Center. A point exactly Radius away is free.
type Circle struct {
	Center mgl32.Vec2
	Radius float32
}

func (c Circle) Blocks(p mgl32.Vec2) bool {
	return p.Sub(c.Center).Len() < c.Radius
}

// Box blocks the open rectangle Center ± HalfSize; its edges are free.
type Box struct {
	Center   mgl32.Vec2
	HalfSize mgl32.Vec2
}

func (b Box) Blocks(p mgl32.Vec2) bool {
	return p.X() > b.Center.X()-b.HalfSize.X() && p.X() < b.Center.X()+b.HalfSize.X() &&
		p.Y() > b.Center.Y()-b.HalfSize.Y() && p.Y() < b.Center.Y()+b.HalfSize.Y()
}
