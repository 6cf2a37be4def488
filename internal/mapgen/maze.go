package mapgen

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Cell states of the carving grid.
const (
	cellUnvisited int8 = -1
	cellOpen      int8 = 0
	cellWall      int8 = 1
)

// CellSpacing is the world distance between two neighbouring maze cells.
const CellSpacing = 2.0

// wallReach is how far from a collidable cell center a position counts as inside the wall.
const wallReach = 1.1

// markerHeight is the y coordinate of every wall marker point.
const markerHeight = 1.0

// Maze is a size x size carving grid. Cells with an even coordinate start as walls,
// cells with two odd coordinates are rooms. It is read-only after GenerateMaze.
type Maze struct {
	Size      int
	cells     []int8
	collision []bool
}

type cell struct{ x, y int }

// GenerateMaze carves a spanning tree of rooms starting at (1, 1) with an iterative
// randomized depth-first search, then marks which walls block movement. Walls inside
// the open areas stay in the grid but are neither collidable nor drawn.
func GenerateMaze(size int, rng Rand) (*Maze, error) {
	if size < 3 {
		return nil, fmt.Errorf("maze size %d: %w", size, ErrInvalidSize)
	}
	m := &Maze{
		Size:      size,
		cells:     make([]int8, size*size),
		collision: make([]bool, size*size),
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if x%2 == 0 || y%2 == 0 {
				m.set(x, y, cellWall)
			} else {
				m.set(x, y, cellUnvisited)
			}
		}
	}
	m.carve(rng)
	m.markCollisions()
	return m, nil
}

func (m *Maze) carve(rng Rand) {
	m.set(1, 1, cellOpen)
	stack := []cell{{1, 1}}
	dirs := [4]cell{{2, 0}, {-2, 0}, {0, 2}, {0, -2}}
	unvisited := make([]cell, 0, len(dirs))

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		unvisited = unvisited[:0]
		for _, d := range dirs {
			nx, ny := c.x+d.x, c.y+d.y
			if nx > 0 && nx < m.Size && ny > 0 && ny < m.Size && m.at(nx, ny) == cellUnvisited {
				unvisited = append(unvisited, d)
			}
		}
		if len(unvisited) == 0 {
			continue
		}

		stack = append(stack, c)
		d := unvisited[rng.IntN(len(unvisited))]
		m.set(c.x+d.x/2, c.y+d.y/2, cellOpen)
		m.set(c.x+d.x, c.y+d.y, cellOpen)
		stack = append(stack, cell{c.x + d.x, c.y + d.y})
	}
}

func (m *Maze) markCollisions() {
	last := m.Size - 1
	for x := 0; x < m.Size; x++ {
		for y := 0; y < m.Size; y++ {
			switch {
			case x == 0 || x == last || y == 0 || y == last:
				m.collision[x*m.Size+y] = true
			case InOpenArea(x, y, m.Size):
			case m.at(x, y) == cellWall:
				m.collision[x*m.Size+y] = true
			}
		}
	}
}

// InOpenArea reports whether cell (x, y) lies in one of the five areas kept free of
// walls for set pieces: the center block and the four corners.
func InOpenArea(x, y, size int) bool {
	return (x > 14 && x < size-15 && y > 14 && y < size-15) ||
		(x < 10 && y < 10) ||
		(x > size-11 && y > size-11) ||
		(x < 10 && y > size-11) ||
		(x > size-11 && y < 10)
}

// Open reports whether (x, y) was carved open. Out-of-range cells are not open.
func (m *Maze) Open(x, y int) bool {
	if !m.inside(x, y) {
		return false
	}
	return m.at(x, y) == cellOpen
}

// Collidable reports whether (x, y) is a wall that blocks movement. Out-of-range cells are collidable.
func (m *Maze) Collidable(x, y int) bool {
	if !m.inside(x, y) {
		return true
	}
	return m.collision[x*m.Size+y]
}

// WallAt reports whether world position pos is blocked by cell (cx, cy). Cells outside the
// grid always block; collidable cells block within wallReach of their center on X and Z.
func (m *Maze) WallAt(cx, cy int, pos mgl32.Vec3) bool {
	if !m.inside(cx, cy) {
		return true
	}
	if !m.collision[cx*m.Size+cy] {
		return false
	}
	wx, wz := float32(cx)*CellSpacing, float32(cy)*CellSpacing
	return pos.X() > wx-wallReach && pos.X() < wx+wallReach &&
		pos.Z() > wz-wallReach && pos.Z() < wz+wallReach
}

// Markers returns one point per collidable cell at (2x, 1, 2y), in x-major order.
func (m *Maze) Markers() PointSet {
	var n int
	for _, c := range m.collision {
		if c {
			n++
		}
	}
	vertices := make([]float32, n*VertexSize)
	i := 0
	for x := 0; x < m.Size; x++ {
		for y := 0; y < m.Size; y++ {
			if !m.collision[x*m.Size+y] {
				continue
			}
			pos := mgl32.Vec3{float32(x) * CellSpacing, markerHeight, float32(y) * CellSpacing}
			putVertex(vertices, i, pos, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec2{})
			i++
		}
	}
	return PointSet{Vertices: vertices}
}

func (m *Maze) inside(x, y int) bool {
	return x >= 0 && x < m.Size && y >= 0 && y < m.Size
}

func (m *Maze) at(x, y int) int8 {
	return m.cells[x*m.Size+y]
}

func (m *Maze) set(x, y int, v int8) {
	m.cells[x*m.Size+y] = v
}
