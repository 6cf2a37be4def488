// Package resource keeps every GPU-side asset of the game under a name: shader programs,
// textures, meshes and point sets, plus the generated terrain and maze that gameplay
// queries for heights and walls.
package resource

import (
	"errors"
	"fmt"

	"maze-game/internal/mapgen"
)

// Kind tells how a resource is bound when drawn.
type Kind int

const (
	Material Kind = iota
	PointSet
	Mesh
	Texture
	Cubemap
)

func (k Kind) String() string {
	switch k {
	case Material:
		return "material"
	case PointSet:
		return "point set"
	case Mesh:
		return "mesh"
	case Texture:
		return "texture"
	case Cubemap:
		return "cubemap"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	// ErrNotFound is returned when no resource has the requested name.
	ErrNotFound = errors.New("resource not found")
	// ErrWrongKind is returned when a resource exists but is not of the expected kind.
	ErrWrongKind = errors.New("resource has the wrong kind")
)

// Resource is a named handle to uploaded data.
//
// Handle is the program id for materials, the texture id for textures and cubemaps, and
// the vertex buffer for meshes and point sets. Elements is the index buffer of a mesh.
// Size is the number of indices of a mesh or the number of points of a point set.
type Resource struct {
	Kind     Kind
	Name     string
	Handle   uint32
	Elements uint32
	Size     int
}

// Backend performs the uploads and compiles for the registry. The graphics package
// provides the OpenGL implementation; tests use a fake.
type Backend interface {
	UploadMesh(m mapgen.Mesh) (vertices, elements uint32, err error)
	UploadPoints(p mapgen.PointSet) (uint32, error)
	// CompileMaterial links a program; geometry is empty when the material has no
	// geometry stage.
	CompileMaterial(vertex, fragment, geometry string) (uint32, error)
	LoadTexture(path string) (uint32, error)
	// LoadCubemap takes the faces in +X, -X, +Y, -Y, +Z, -Z order.
	LoadCubemap(faces [6]string) (uint32, error)
	Release(r *Resource)
}
