package resource

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/mapgen"
)

type fakeBackend struct {
	next      uint32
	programs  map[uint32][3]string
	textures  []string
	cubemaps  [][6]string
	released  []string
	failStage string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{programs: make(map[uint32][3]string)}
}

func (b *fakeBackend) id() uint32 { b.next++; return b.next }

func (b *fakeBackend) UploadMesh(m mapgen.Mesh) (uint32, uint32, error) {
	return b.id(), b.id(), nil
}

func (b *fakeBackend) UploadPoints(p mapgen.PointSet) (uint32, error) { return b.id(), nil }

func (b *fakeBackend) CompileMaterial(vs, fs, gs string) (uint32, error) {
	if b.failStage != "" {
		return 0, errors.New(b.failStage + " shader failed to compile")
	}
	id := b.id()
	b.programs[id] = [3]string{vs, fs, gs}
	return id, nil
}

func (b *fakeBackend) LoadTexture(path string) (uint32, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	b.textures = append(b.textures, path)
	return b.id(), nil
}

func (b *fakeBackend) LoadCubemap(faces [6]string) (uint32, error) {
	b.cubemaps = append(b.cubemaps, faces)
	return b.id(), nil
}

func (b *fakeBackend) Release(r *Resource) { b.released = append(b.released, r.Name) }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r := NewRegistry(newFakeBackend(), "", nil)
	r.Add(&Resource{Kind: Texture, Name: "Wood", Handle: 1})
	r.Add(&Resource{Kind: Texture, Name: "Wood", Handle: 2})
	got, err := r.Get("Wood")
	if err != nil {
		t.Fatal(err)
	}
	if got.Handle != 1 {
		t.Errorf("handle = %d, want the first one", got.Handle)
	}
	if r.Len() != 2 {
		t.Errorf("len = %d, want 2", r.Len())
	}
	if _, err := r.Get("Stone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing resource err = %v", err)
	}
	if _, err := r.Expect("Wood", Material); !errors.Is(err, ErrWrongKind) {
		t.Errorf("wrong kind err = %v", err)
	}
	if _, err := r.Expect("Wood", Cubemap, Texture); err != nil {
		t.Errorf("Expect with matching kind: %v", err)
	}
}

func TestLoadMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maze_vp.glsl", "vertex")
	writeFile(t, dir, "maze_fp.glsl", "fragment")
	writeFile(t, dir, "leaf_vp.glsl", "vertex")
	writeFile(t, dir, "leaf_fp.glsl", "fragment")
	writeFile(t, dir, "leaf_gp.glsl", "geometry")

	b := newFakeBackend()
	r := NewRegistry(b, dir, nil)
	if err := r.Load(Material, "MazeShader", "maze"); err != nil {
		t.Fatal(err)
	}
	if err := r.Load(Material, "LeavesShader", "leaf"); err != nil {
		t.Fatal(err)
	}

	maze, _ := r.Expect("MazeShader", Material)
	if src := b.programs[maze.Handle]; src != [3]string{"vertex", "fragment", ""} {
		t.Errorf("maze sources = %q", src)
	}
	leaf, _ := r.Expect("LeavesShader", Material)
	if src := b.programs[leaf.Handle]; src[2] != "geometry" {
		t.Errorf("leaf geometry stage = %q", src[2])
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "half_vp.glsl", "vertex")
	writeFile(t, dir, "bad.obj", "v 0 0 0\nf 1 2 3\n")

	b := newFakeBackend()
	r := NewRegistry(b, dir, nil)
	if err := r.Load(Material, "Half", "half"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing fragment stage err = %v", err)
	}
	if err := r.Load(Texture, "Missing", "missing.png"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing texture err = %v", err)
	}
	if err := r.Load(Mesh, "Bad", "bad.obj"); !errors.Is(err, ErrBadOBJ) {
		t.Errorf("bad mesh err = %v", err)
	}
	if err := r.Load(PointSet, "Points", "p"); err == nil {
		t.Error("loading a point set from a file should fail")
	}

	writeFile(t, dir, "half_fp.glsl", "fragment")
	b.failStage = "vertex"
	if err := r.Load(Material, "Half", "half"); err == nil {
		t.Error("compile failure not reported")
	}
	if r.Len() != 0 {
		t.Errorf("failed loads left %d resources", r.Len())
	}
}

func TestLoadMeshAndTextures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.obj", quadOBJ)
	writeFile(t, dir, "wood.png", "not decoded by the fake")

	b := newFakeBackend()
	r := NewRegistry(b, dir, nil)
	if err := r.Load(Mesh, "Quad", "quad.obj"); err != nil {
		t.Fatal(err)
	}
	quad, _ := r.Expect("Quad", Mesh)
	if quad.Size != 6 || quad.Elements == 0 {
		t.Errorf("quad resource = %+v", quad)
	}
	if err := r.Load(Texture, "Wood", "wood.png"); err != nil {
		t.Fatal(err)
	}
	if b.textures[0] != filepath.Join(dir, "wood.png") {
		t.Errorf("texture path = %q", b.textures[0])
	}

	faces := [6]string{"sb0.png", "sb1.png", "sb2.png", "sb3.png", "sb4.png", "sb5.png"}
	if err := r.LoadCubemap("Skybox", faces); err != nil {
		t.Fatal(err)
	}
	if b.cubemaps[0][5] != filepath.Join(dir, "sb5.png") {
		t.Errorf("cubemap face = %q", b.cubemaps[0][5])
	}
	if _, err := r.Expect("Skybox", Cubemap); err != nil {
		t.Error(err)
	}

	r.Close()
	if len(b.released) != 3 {
		t.Errorf("released %v, want 3 resources", b.released)
	}
	if _, err := r.Get("Quad"); !errors.Is(err, ErrNotFound) {
		t.Errorf("resource still reachable after Close")
	}
}

func TestGeneratedWorldQueries(t *testing.T) {
	r := NewRegistry(newFakeBackend(), "", nil)
	if r.Height(55, 55) != 0 || r.WallAt(0, 0, mgl32.Vec3{}) {
		t.Fatal("queries before generation should report flat open ground")
	}

	if err := r.CreateTerrain("Terrain", 110, 3); err != nil {
		t.Fatal(err)
	}
	if err := r.CreateMaze("Maze", 55, rand.New(rand.NewPCG(1, 2))); err != nil {
		t.Fatal(err)
	}
	if h := r.Height(55, 55); h <= 0 {
		t.Errorf("centre height = %v, want > 0", h)
	}
	if !r.WallAt(0, 3, mgl32.Vec3{0, 1, 6}) {
		t.Error("border wall not reported")
	}
	if r.WallAt(1, 1, mgl32.Vec3{2, 1, 2}) {
		t.Error("carved room reported as wall")
	}
	maze, err := r.Expect("Maze", PointSet)
	if err != nil {
		t.Fatal(err)
	}
	if maze.Size != r.Maze().Markers().Count() {
		t.Errorf("maze size = %d, want marker count", maze.Size)
	}
	terrain, _ := r.Expect("Terrain", Mesh)
	if terrain.Size != 109*109*6 {
		t.Errorf("terrain indices = %d", terrain.Size)
	}

	if err := r.CreateMaze("Tiny", 2, rand.New(rand.NewPCG(1, 2))); !errors.Is(err, mapgen.ErrInvalidSize) {
		t.Errorf("tiny maze err = %v", err)
	}
}
