package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// WallQuery answers whether maze cell (cx, cy) blocks pos. *resource.Registry satisfies it.
type WallQuery interface {
	WallAt(cx, cy int, pos mgl32.Vec3) bool
}

// CellSize is the world distance between maze cell centres.
const CellSize = 2

// neighbours are the maze cells checked around the player's cell, in order.
var neighbours = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// World holds the static obstacles the player walks among.
type World struct {
	Walls     WallQuery
	Colliders []Collider
}

// NewWorld returns a world whose maze walls come from walls. walls may be nil.
func NewWorld(walls WallQuery) *World {
	return &World{Walls: walls}
}

// Add appends a collider. Order is preserved; the first blocking collider wins.
func (w *World) Add(c Collider) {
	w.Colliders = append(w.Colliders, c)
}

// Cell returns the maze cell containing world position p.
func Cell(p mgl32.Vec3) (int, int) {
	return int(math32.Round(p.X() / CellSize)), int(math32.Round(p.Z() / CellSize))
}

// Blocked reports whether moving to next is blocked. Maze walls are looked up in the
// eight cells around from, the position the move starts at; the colliders are tested
// against next on the ground plane.
func (w *World) Blocked(from, next mgl32.Vec3) bool {
	if w.Walls != nil {
		cx, cy := Cell(from)
		ground := mgl32.Vec3{next.X(), 0, next.Z()}
		for _, d := range neighbours {
			if w.Walls.WallAt(cx+d[0], cy+d[1], ground) {
				return true
			}
		}
	}
	p := mgl32.Vec2{next.X(), next.Z()}
	for _, c := range w.Colliders {
		if c.Blocks(p) {
			return true
		}
	}
	return false
}
