package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/mapgen"
)

// Shader source suffixes appended to a material prefix.
const (
	VertexSuffix   = "_vp.glsl"
	FragmentSuffix = "_fp.glsl"
	GeometrySuffix = "_gp.glsl"
)

// Logger is the subset of logger.Logger the registry reports to.
type Logger interface {
	Logf(format string, args ...any)
}

// Registry owns every loaded resource. Lookups return the first resource added under a
// name; later additions with the same name are kept but never returned by Get.
type Registry struct {
	backend Backend
	dir     string
	log     Logger

	items  []*Resource
	byName map[string]int

	terrain *mapgen.Terrain
	maze    *mapgen.Maze
}

// NewRegistry returns a registry that reads asset files relative to dir and uploads them
// through backend. log may be nil.
func NewRegistry(backend Backend, dir string, log Logger) *Registry {
	return &Registry{
		backend: backend,
		dir:     dir,
		log:     log,
		byName:  make(map[string]int),
	}
}

func (r *Registry) logf(format string, args ...any) {
	if r.log != nil {
		r.log.Logf(format, args...)
	}
}

// Add stores res. It never replaces an earlier resource with the same name.
func (r *Registry) Add(res *Resource) {
	if _, ok := r.byName[res.Name]; !ok {
		r.byName[res.Name] = len(r.items)
	}
	r.items = append(r.items, res)
}

// Get returns the first resource named name.
func (r *Registry) Get(name string) (*Resource, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return r.items[i], nil
}

// Expect returns the first resource named name and checks that it is one of kinds.
func (r *Registry) Expect(name string, kinds ...Kind) (*Resource, error) {
	res, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if res.Kind == k {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%q is a %v: %w", name, res.Kind, ErrWrongKind)
}

// Len returns the number of stored resources, shadowed ones included.
func (r *Registry) Len() int { return len(r.items) }

func (r *Registry) path(name string) string {
	if filepath.IsAbs(name) || r.dir == "" {
		return name
	}
	return filepath.Join(r.dir, name)
}

// Load reads a resource file. For a Material, path is the prefix of the shader sources;
// the geometry stage is optional. Textures and meshes take the file path.
func (r *Registry) Load(kind Kind, name, path string) error {
	var err error
	switch kind {
	case Material:
		err = r.loadMaterial(name, path)
	case Texture:
		err = r.loadTexture(name, path)
	case Mesh:
		err = r.loadMesh(name, path)
	default:
		err = fmt.Errorf("cannot load a %v from a file", kind)
	}
	if err != nil {
		return fmt.Errorf("load %v %q: %w", kind, name, err)
	}
	r.logf("loaded %v %s from %s", kind, name, path)
	return nil
}

func (r *Registry) loadMaterial(name, prefix string) error {
	full := r.path(prefix)
	vs, err := os.ReadFile(full + VertexSuffix)
	if err != nil {
		return err
	}
	fsrc, err := os.ReadFile(full + FragmentSuffix)
	if err != nil {
		return err
	}
	gs, err := os.ReadFile(full + GeometrySuffix)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	program, err := r.backend.CompileMaterial(string(vs), string(fsrc), string(gs))
	if err != nil {
		return err
	}
	r.Add(&Resource{Kind: Material, Name: name, Handle: program})
	return nil
}

func (r *Registry) loadTexture(name, path string) error {
	tex, err := r.backend.LoadTexture(r.path(path))
	if err != nil {
		return err
	}
	r.Add(&Resource{Kind: Texture, Name: name, Handle: tex})
	return nil
}

func (r *Registry) loadMesh(name, path string) error {
	f, err := os.Open(r.path(path))
	if err != nil {
		return err
	}
	defer f.Close()
	mesh, err := ParseOBJ(f)
	if err != nil {
		return err
	}
	return r.AddMesh(name, mesh)
}

// LoadCubemap loads six face images, +X, -X, +Y, -Y, +Z, -Z, as one cubemap texture.
func (r *Registry) LoadCubemap(name string, faces [6]string) error {
	var full [6]string
	for i, f := range faces {
		full[i] = r.path(f)
	}
	tex, err := r.backend.LoadCubemap(full)
	if err != nil {
		return fmt.Errorf("load cubemap %q: %w", name, err)
	}
	r.Add(&Resource{Kind: Cubemap, Name: name, Handle: tex})
	r.logf("loaded cubemap %s", name)
	return nil
}

// AddMesh uploads generated triangle data.
func (r *Registry) AddMesh(name string, m mapgen.Mesh) error {
	vbo, ebo, err := r.backend.UploadMesh(m)
	if err != nil {
		return fmt.Errorf("upload mesh %q: %w", name, err)
	}
	r.Add(&Resource{Kind: Mesh, Name: name, Handle: vbo, Elements: ebo, Size: len(m.Indices)})
	return nil
}

// AddPoints uploads generated point data.
func (r *Registry) AddPoints(name string, p mapgen.PointSet) error {
	vbo, err := r.backend.UploadPoints(p)
	if err != nil {
		return fmt.Errorf("upload points %q: %w", name, err)
	}
	r.Add(&Resource{Kind: PointSet, Name: name, Handle: vbo, Size: p.Count()})
	return nil
}

// CreateTerrain generates the heightmap, uploads its mesh and keeps it for Height.
func (r *Registry) CreateTerrain(name string, dim int, seed int64) error {
	t, err := mapgen.NewTerrain(dim, seed)
	if err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	if err := r.AddMesh(name, t.Mesh()); err != nil {
		return err
	}
	r.terrain = t
	r.logf("terrain %dx%d generated", dim, dim)
	return nil
}

// CreateMaze generates the maze, uploads its wall markers and keeps it for WallAt.
func (r *Registry) CreateMaze(name string, size int, rng mapgen.Rand) error {
	m, err := mapgen.GenerateMaze(size, rng)
	if err != nil {
		return fmt.Errorf("maze: %w", err)
	}
	markers := m.Markers()
	if err := r.AddPoints(name, markers); err != nil {
		return err
	}
	r.maze = m
	r.logf("maze %dx%d generated with %d wall markers", size, size, markers.Count())
	return nil
}

// Maze returns the generated maze, or nil before CreateMaze.
func (r *Registry) Maze() *mapgen.Maze { return r.maze }

// Height returns the interpolated terrain height, or 0 before CreateTerrain.
func (r *Registry) Height(x, z float32) float32 {
	if r.terrain == nil {
		return 0
	}
	return r.terrain.HeightAt(x, z)
}

// WallAt reports whether maze cell (cx, cy) is a wall reaching pos. It is false before
// CreateMaze.
func (r *Registry) WallAt(cx, cy int, pos mgl32.Vec3) bool {
	if r.maze == nil {
		return false
	}
	return r.maze.WallAt(cx, cy, pos)
}

// Close releases every resource through the backend.
func (r *Registry) Close() {
	for _, res := range r.items {
		r.backend.Release(res)
	}
	r.items = nil
	r.byName = make(map[string]int)
}
