package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCircleBoundary(t *testing.T) {
	c := Circle{Center: mgl32.Vec2{55, 55}, Radius: 1}
	tests := []struct {
		name string
		p    mgl32.Vec2
		want bool
	}{
		{"centre", mgl32.Vec2{55, 55}, true},
		{"inside", mgl32.Vec2{55.5, 55}, true},
		{"exactly on radius", mgl32.Vec2{56, 55}, false},
		{"outside", mgl32.Vec2{57, 55}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Blocks(tt.p); got != tt.want {
				t.Errorf("Blocks(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoxEdgesAreFree(t *testing.T) {
	b := Box{Center: mgl32.Vec2{5, 100}, HalfSize: mgl32.Vec2{2.5, 5.1}}
	tests := []struct {
		p    mgl32.Vec2
		want bool
	}{
		{mgl32.Vec2{5, 100}, true},
		{mgl32.Vec2{7.4, 104}, true},
		{mgl32.Vec2{7.5, 100}, false},
		{mgl32.Vec2{2.5, 100}, false},
		{mgl32.Vec2{5, 106}, false},
	}
	for _, tt := range tests {
		if got := b.Blocks(tt.p); got != tt.want {
			t.Errorf("Blocks(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

// wallSet blocks any position in the listed cells.
type wallSet struct {
	cells   map[[2]int]bool
	queried [][2]int
}

func (w *wallSet) WallAt(cx, cy int, pos mgl32.Vec3) bool {
	w.queried = append(w.queried, [2]int{cx, cy})
	return w.cells[[2]int{cx, cy}]
}

func TestBlockedChecksNeighbourCellsOfStart(t *testing.T) {
	walls := &wallSet{cells: map[[2]int]bool{}}
	w := NewWorld(walls)
	from := mgl32.Vec3{10.9, 1, 6.2}
	if w.Blocked(from, mgl32.Vec3{11, 1, 6.2}) {
		t.Fatal("blocked with no walls")
	}
	if len(walls.queried) != 8 {
		t.Fatalf("queried %d cells, want 8", len(walls.queried))
	}
	// cell of (10.9, 6.2) is (5, 3); its own cell is never checked
	for _, q := range walls.queried {
		if q == [2]int{5, 3} {
			t.Error("own cell queried")
		}
		if q[0] < 4 || q[0] > 6 || q[1] < 2 || q[1] > 4 {
			t.Errorf("queried cell %v outside the neighbourhood of (5,3)", q)
		}
	}

	walls.cells[[2]int{6, 4}] = true
	if !w.Blocked(from, mgl32.Vec3{11, 1, 6.2}) {
		t.Error("diagonal wall ignored")
	}
}

func TestBlockedColliders(t *testing.T) {
	w := NewWorld(nil)
	w.Add(Circle{Center: mgl32.Vec2{98.5, 98.5}, Radius: 2})
	w.Add(Box{Center: mgl32.Vec2{99.5, 8.5}, HalfSize: mgl32.Vec2{1.1, 1.1}})

	if !w.Blocked(mgl32.Vec3{}, mgl32.Vec3{99, 5, 99}) {
		t.Error("fountain did not block")
	}
	if !w.Blocked(mgl32.Vec3{}, mgl32.Vec3{100, 0, 9}) {
		t.Error("shrine did not block")
	}
	if w.Blocked(mgl32.Vec3{}, mgl32.Vec3{50, 0, 50}) {
		t.Error("open ground blocked")
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		p      mgl32.Vec3
		cx, cy int
	}{
		{mgl32.Vec3{2, 1, 2}, 1, 1},
		{mgl32.Vec3{2.9, 0, 3.1}, 1, 2},
		{mgl32.Vec3{1, 0, 0.99}, 1, 0},
	}
	for _, tt := range tests {
		if cx, cy := Cell(tt.p); cx != tt.cx || cy != tt.cy {
			t.Errorf("Cell(%v) = (%d,%d), want (%d,%d)", tt.p, cx, cy, tt.cx, tt.cy)
		}
	}
}
