package game

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maze-game/internal/config"
	"maze-game/internal/mapgen"
	"maze-game/internal/physics"
	"maze-game/internal/resource"
	"maze-game/internal/scene"
)

// nopBackend hands out increasing ids without touching a GPU.
type nopBackend struct{ next uint32 }

func (b *nopBackend) id() uint32 { b.next++; return b.next }

func (b *nopBackend) UploadMesh(mapgen.Mesh) (uint32, uint32, error) { return b.id(), b.id(), nil }
func (b *nopBackend) UploadPoints(mapgen.PointSet) (uint32, error) { return b.id(), nil }
func (b *nopBackend) CompileMaterial(_, _, _ string) (uint32, error) { return b.id(), nil }
func (b *nopBackend) LoadTexture(string) (uint32, error) { return b.id(), nil }
func (b *nopBackend) LoadCubemap([6]string) (uint32, error) { return b.id(), nil }
func (b *nopBackend) Release(*resource.Resource) {}

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

// writeAssets creates a minimal asset directory: one triangle per mesh and trivial
// shader sources.
func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for _, m := range meshes {
		write(m.file, triangleOBJ)
	}
	for _, m := range materials {
		write(m.file+resource.VertexSuffix, "void main() {}")
		write(m.file+resource.FragmentSuffix, "void main() {}")
	}
	return dir
}

func loadedRegistry(t *testing.T) *resource.Registry {
	t.Helper()
	reg := resource.NewRegistry(&nopBackend{}, writeAssets(t), nil)
	if err := LoadAssets(reg, 3, rand.New(rand.NewPCG(3, 4))); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestLoadAssets(t *testing.T) {
	reg := loadedRegistry(t)
	checks := []struct {
		name string
		kind resource.Kind
	}{
		{"Terrain", resource.Mesh},
		{"Maze", resource.PointSet},
		{"Skybox", resource.Mesh},
		{"SkyboxTexture", resource.Cubemap},
		{"FountainParticles", resource.PointSet},
		{"Portal", resource.PointSet},
		{"Cylinder", resource.Mesh},
		{"Bench", resource.Mesh},
		{"ProximityShader", resource.Material},
		{"LeafTexture", resource.Texture},
	}
	for _, c := range checks {
		if _, err := reg.Expect(c.name, c.kind); err != nil {
			t.Errorf("%s: %v", c.name, err)
		}
	}
	if reg.Maze() == nil {
		t.Error("maze not kept for collisions")
	}
}

func TestLoadAssetsMissingShader(t *testing.T) {
	dir := writeAssets(t)
	if err := os.Remove(filepath.Join(dir, "portal"+resource.FragmentSuffix)); err != nil {
		t.Fatal(err)
	}
	reg := resource.NewRegistry(&nopBackend{}, dir, nil)
	err := LoadAssets(reg, 3, rand.New(rand.NewPCG(3, 4)))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want a missing file error", err)
	}
}

func TestBuildScene(t *testing.T) {
	reg := loadedRegistry(t)
	graph := scene.New(&fakeClock{})
	world := physics.NewWorld(reg)
	if err := BuildScene(reg, graph, world, rand.New(rand.NewPCG(5, 6))); err != nil {
		t.Fatal(err)
	}

	counts := []struct {
		name string
		want int
	}{
		{"Trunk", 1},
		{"Branch", 2 + 4 + 8 + 16},
		{"LeftWing", 3},
		{"RightWing", 3},
		{"Rock", 30},
		{"Cross", 18},
		{"Grave", 18},
		{"Pillar", 19},
		{"Bench", 8},
		{"Shrine", 3},
		{"Portal", 1},
	}
	for _, c := range counts {
		if got := len(graph.FindAll(c.name)); got != c.want {
			t.Errorf("%s nodes = %d, want %d", c.name, got, c.want)
		}
	}

	// tree 1, rocks 20, crosses 17, pillars 19, fountain 1, benches 8, shrines 2,
	// stage 1, stone circle 10, circle shrine 1
	if got := len(world.Colliders); got != 80 {
		t.Errorf("colliders = %d, want 80", got)
	}

	maze, ok := graph.Find("Maze")
	if !ok || !graph.Node(maze).Opaque {
		t.Error("maze node missing or blended")
	}
	branch, _ := graph.Find("Branch")
	if graph.Node(branch).Role != scene.SwayingBranch {
		t.Errorf("branch role = %v", graph.Node(branch).Role)
	}

	g, err := New(Deps{Clock: &fakeClock{}, Graph: graph, Registry: reg, World: world},
		config.Window{Width: 1280, Height: 720, FPS: 60}, config.Camera{FOV: 60, Near: 0.001, Far: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Gems()) != GemCount {
		t.Fatalf("gems = %d, want %d", len(g.Gems()), GemCount)
	}
	for i, gem := range g.Gems() {
		x, z := int(gem.Location.X()/2), int(gem.Location.Y()/2)
		if !validGemCell(x, z) {
			t.Errorf("gem %d on excluded cell (%d, %d)", i, x, z)
		}
		if !reg.Maze().Open(x, z) {
			t.Errorf("gem %d inside a wall at (%d, %d)", i, x, z)
		}
	}
}

func TestBuildSceneMissingResource(t *testing.T) {
	reg := resource.NewRegistry(&nopBackend{}, "", nil)
	err := BuildScene(reg, scene.New(&fakeClock{}), physics.NewWorld(nil), rand.New(rand.NewPCG(1, 1)))
	if !errors.Is(err, resource.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestValidGemCell(t *testing.T) {
	tests := []struct {
		x, z int
		want bool
	}{
		{11, 1, true},
		{12, 1, false},
		{27, 27, false},
		{1, 1, false},
		{53, 53, false},
		{1, 53, false},
		{53, 1, false},
		{13, 27, true},
		{45, 27, true},
	}
	for _, tt := range tests {
		if got := validGemCell(tt.x, tt.z); got != tt.want {
			t.Errorf("validGemCell(%d, %d) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

// stageBackend records the shader stages handed to CompileMaterial.
type stageBackend struct {
	nopBackend
	stages map[uint32][3]string
}

func (b *stageBackend) CompileMaterial(vs, fs, gs string) (uint32, error) {
	id := b.id()
	b.stages[id] = [3]string{vs, fs, gs}
	return id, nil
}

func TestShippedShaders(t *testing.T) {
	const dir = "../../assets"
	b := &stageBackend{stages: make(map[uint32][3]string)}
	reg := resource.NewRegistry(b, dir, nil)
	for _, m := range materials {
		if err := reg.Load(resource.Material, m.name, m.file); err != nil {
			t.Errorf("%s: %v", m.name, err)
			continue
		}
		res, _ := reg.Expect(m.name, resource.Material)
		st := b.stages[res.Handle]

		// full-screen passes read the target quad, everything else the 11-float layout
		input, wantUniform := "in vec3 vertex;", "view_mat"
		if m.name == "OverlayShader" || m.name == "ProximityShader" {
			input, wantUniform = "in vec3 position;", "texture_map"
		}
		if !strings.Contains(st[0], input) {
			t.Errorf("%s vertex stage does not declare %q", m.name, input)
		}
		if !strings.Contains(st[0]+st[2]+st[1], wantUniform) {
			t.Errorf("%s does not use %s", m.name, wantUniform)
		}
		for i, src := range st {
			if src != "" && !strings.HasPrefix(src, "#version 330 core") {
				t.Errorf("%s stage %d has no #version 330 core line", m.name, i)
			}
		}
		if hasGeometry := st[2] != ""; hasGeometry != (m.name == "MazeShader") {
			t.Errorf("%s geometry stage present = %v", m.name, hasGeometry)
		}
	}
}
