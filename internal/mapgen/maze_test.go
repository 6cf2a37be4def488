package mapgen

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func reachableRooms(m *Maze) map[cell]bool {
	seen := map[cell]bool{{1, 1}: true}
	queue := []cell{{1, 1}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range []cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := cell{c.x + d.x, c.y + d.y}
			if seen[n] || !m.Open(n.x, n.y) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

func TestGenerateMazeConnectsEveryRoom(t *testing.T) {
	for _, size := range []int{5, 11, 55} {
		for seed := uint64(0); seed < 20; seed++ {
			m, err := GenerateMaze(size, rand.New(rand.NewPCG(seed, seed*7+1)))
			if err != nil {
				t.Fatalf("size %d seed %d: %v", size, seed, err)
			}
			seen := reachableRooms(m)
			for x := 1; x < size; x += 2 {
				for y := 1; y < size; y += 2 {
					if !seen[cell{x, y}] {
						t.Fatalf("size %d seed %d: room (%d,%d) unreachable", size, seed, x, y)
					}
				}
			}
		}
	}
}

func TestGenerateMazeIsATree(t *testing.T) {
	m, err := GenerateMaze(21, rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	rooms, passages := 0, 0
	for x := 1; x < m.Size-1; x++ {
		for y := 1; y < m.Size-1; y++ {
			if !m.Open(x, y) {
				continue
			}
			if x%2 == 1 && y%2 == 1 {
				rooms++
			} else {
				passages++
			}
		}
	}
	if passages != rooms-1 {
		t.Errorf("passages = %d, want rooms-1 = %d", passages, rooms-1)
	}
}

func TestGenerateMazeRejectsTinyGrid(t *testing.T) {
	_, err := GenerateMaze(2, rand.New(rand.NewPCG(1, 1)))
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
}

func TestMazeCollisionGrid(t *testing.T) {
	const size = 55
	m, err := GenerateMaze(size, rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < size; i++ {
		for _, c := range []cell{{i, 0}, {0, i}, {i, size - 1}, {size - 1, i}} {
			if !m.Collidable(c.x, c.y) {
				t.Fatalf("border cell %v not collidable", c)
			}
		}
	}
	for x := 1; x < size-1; x++ {
		for y := 1; y < size-1; y++ {
			if InOpenArea(x, y, size) && m.Collidable(x, y) {
				t.Fatalf("open area cell (%d,%d) collidable", x, y)
			}
			if m.Open(x, y) && m.Collidable(x, y) {
				t.Fatalf("carved cell (%d,%d) collidable", x, y)
			}
		}
	}
	if !m.Collidable(-1, 3) || !m.Collidable(3, size) {
		t.Error("out-of-range cells should be collidable")
	}
}

func TestMazeMarkersMatchCollisionGrid(t *testing.T) {
	m, err := GenerateMaze(15, rand.New(rand.NewPCG(5, 6)))
	if err != nil {
		t.Fatal(err)
	}
	markers := m.Markers()
	want := 0
	for x := 0; x < m.Size; x++ {
		for y := 0; y < m.Size; y++ {
			if m.Collidable(x, y) {
				want++
			}
		}
	}
	if markers.Count() != want {
		t.Fatalf("markers = %d, want %d", markers.Count(), want)
	}
	first := markers.Position(0)
	if first != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("first marker = %v, want (0,1,0)", first)
	}
}

func TestMazeWallAt(t *testing.T) {
	m, err := GenerateMaze(15, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		cx, cy int
		pos    mgl32.Vec3
		want   bool
	}{
		{"outside grid", -1, 0, mgl32.Vec3{100, 0, 100}, true},
		{"border wall center", 0, 3, mgl32.Vec3{0, 0, 6}, true},
		{"border wall edge inside", 0, 3, mgl32.Vec3{1.09, 0, 6}, true},
		{"border wall edge exact", 0, 3, mgl32.Vec3{1.1, 0, 6}, false},
		{"far from wall", 0, 3, mgl32.Vec3{5, 0, 6}, false},
		{"carved room", 1, 1, mgl32.Vec3{2, 0, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.WallAt(tt.cx, tt.cy, tt.pos); got != tt.want {
				t.Errorf("WallAt(%d,%d,%v) = %v, want %v", tt.cx, tt.cy, tt.pos, got, tt.want)
			}
		})
	}
}

func TestInOpenArea(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{27, 27, true},
		{15, 15, true},
		{14, 27, false},
		{5, 5, true},
		{50, 50, true},
		{5, 50, true},
		{50, 5, true},
		{11, 11, false},
		{27, 5, false},
	}
	for _, tt := range tests {
		if got := InOpenArea(tt.x, tt.y, 55); got != tt.want {
			t.Errorf("InOpenArea(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
