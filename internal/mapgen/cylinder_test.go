package mapgen

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestGenerateCylinder(t *testing.T) {
	const hs, cs = 32, 32
	mesh, err := GenerateCylinder(2, 1, hs, cs)
	if err != nil {
		t.Fatal(err)
	}
	if got := mesh.VertexCount(); got != hs*cs+2 {
		t.Fatalf("vertices = %d, want %d", got, hs*cs+2)
	}
	if got, want := len(mesh.Indices), ((hs-1)*cs*2+2*cs)*3; got != want {
		t.Fatalf("indices = %d, want %d", got, want)
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= mesh.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}

	// ring 8, sample 4: s = 0.25, t = 0.125
	v := 8*cs + 4
	if got, want := mesh.Color(v), (mgl32.Vec3{0.75, 0.125, 0.25}); !got.ApproxEqual(want) {
		t.Errorf("color = %v, want %v", got, want)
	}
	pos := mesh.Position(v)
	if r := math32.Hypot(pos.X(), pos.Z()); math32.Abs(r-1) > 1e-5 {
		t.Errorf("side vertex radius = %v, want 1", r)
	}
	if math32.Abs(pos.Y()-(-0.5)) > 1e-5 {
		t.Errorf("side vertex y = %v, want -0.5", pos.Y())
	}

	top, bottom := hs*cs, hs*cs+1
	if got := mesh.Normal(top); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("top normal = %v", got)
	}
	if got := mesh.Position(bottom); got != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("bottom center = %v, want (0,-1,0)", got)
	}
	if got, want := mesh.Position(top).Y(), mesh.Position((hs-1)*cs).Y(); math32.Abs(got-want) > 1e-5 {
		t.Errorf("top center y = %v, want top ring y %v", got, want)
	}
}

func TestGenerateCylinderRejectsBadSampling(t *testing.T) {
	tests := []struct {
		h, r   float32
		hs, cs int
	}{
		{2, 1, 1, 32},
		{2, 1, 32, 2},
		{0, 1, 32, 32},
		{2, -1, 32, 32},
	}
	for _, tt := range tests {
		if _, err := GenerateCylinder(tt.h, tt.r, tt.hs, tt.cs); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("GenerateCylinder(%v,%v,%d,%d) err = %v", tt.h, tt.r, tt.hs, tt.cs, err)
		}
	}
}

func TestParticleSets(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))

	fountain, err := FountainParticles(800, rng)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < fountain.Count(); i++ {
		n := fountain.Normal(i)
		if math32.Abs(n.Len()-1) > 1e-4 {
			t.Fatalf("fountain normal %d length %v", i, n.Len())
		}
		if !fountain.Position(i).ApproxEqual(n.Mul(0.2)) {
			t.Fatalf("fountain position %d not along normal", i)
		}
		if c := fountain.Color(i); c.X() != float32(i)/800 {
			t.Fatalf("fountain phase %d = %v", i, c.X())
		}
	}

	monster, err := MonsterParticles(300, rng)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < monster.Count(); i++ {
		if l := monster.Position(i).Len(); math32.Abs(l-0.2) > 1e-4 {
			t.Fatalf("monster particle %d at radius %v", i, l)
		}
		if monster.Color(i).X() != float32(i) {
			t.Fatalf("monster particle %d index = %v", i, monster.Color(i).X())
		}
	}

	leaves, err := LeafParticles(500, rng)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < leaves.Count(); i++ {
		p := leaves.Position(i)
		if math32.Hypot(p.X(), p.Z()) > 5+1e-4 || p.Y() < 0 || p.Y() > 0.5 {
			t.Fatalf("leaf %d at %v outside the disk", i, p)
		}
		if leaves.Normal(i) != (mgl32.Vec3{0, -1, 0}) {
			t.Fatalf("leaf %d normal %v", i, leaves.Normal(i))
		}
	}

	line, err := LineParticles(1000)
	if err != nil {
		t.Fatal(err)
	}
	if got := line.Position(0).Y(); got != 2 {
		t.Errorf("first line particle y = %v, want 2", got)
	}
	if got := line.Position(500).Y(); got != 0 {
		t.Errorf("middle line particle y = %v, want 0", got)
	}

	if _, err := LineParticles(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("LineParticles(0) err = %v", err)
	}
}

func TestSkyboxCube(t *testing.T) {
	mesh := SkyboxCube()
	if mesh.VertexCount() != 8 || len(mesh.Indices) != 36 {
		t.Fatalf("skybox has %d vertices and %d indices", mesh.VertexCount(), len(mesh.Indices))
	}
	for i := 0; i < 8; i++ {
		p := mesh.Position(i)
		for _, c := range p {
			if c != 2 && c != -2 {
				t.Fatalf("corner %d = %v", i, p)
			}
		}
	}
}
