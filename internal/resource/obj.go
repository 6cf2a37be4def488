package resource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/mapgen"
)

// ErrBadOBJ wraps every OBJ parse failure.
var ErrBadOBJ = errors.New("malformed obj")

// objCorner indexes into the position, uv and normal lists; -1 means absent.
type objCorner struct {
	v, t, n int
}

type objFace [3]objCorner

// ParseOBJ reads a Wavefront OBJ file. It understands v, vn, vt and f; faces may be
// triangles or quads, and quads are split into two triangles. When the file carries no
// vn lines, each position gets the average of the normals of the faces using it.
// The result has three vertices per face, indexed in order.
func ParseOBJ(r io.Reader) (mapgen.Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		faces     []objFace
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		parts := strings.Fields(text)
		var err error
		switch parts[0] {
		case "v":
			var p mgl32.Vec3
			p, err = parseVec3(parts)
			positions = append(positions, p)
		case "vn":
			var n mgl32.Vec3
			n, err = parseVec3(parts)
			normals = append(normals, n)
		case "vt":
			if len(parts) < 3 {
				err = errors.New("vt needs 2 values")
				break
			}
			var uv mgl32.Vec2
			for i := range 2 {
				if uv[i], err = parseFloat(parts[i+1]); err != nil {
					break
				}
			}
			uvs = append(uvs, uv)
		case "f":
			var fs []objFace
			fs, err = parseFace(parts[1:], len(positions), len(uvs), len(normals))
			faces = append(faces, fs...)
		}
		if err != nil {
			return mapgen.Mesh{}, fmt.Errorf("%w: line %d: %v", ErrBadOBJ, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return mapgen.Mesh{}, err
	}

	for _, f := range faces {
		for _, c := range f {
			if c.v < 0 || c.v >= len(positions) {
				return mapgen.Mesh{}, fmt.Errorf("%w: position index %d out of bounds", ErrBadOBJ, c.v+1)
			}
			if c.t >= len(uvs) {
				return mapgen.Mesh{}, fmt.Errorf("%w: uv index %d out of bounds", ErrBadOBJ, c.t+1)
			}
			if len(normals) > 0 && c.n >= len(normals) {
				return mapgen.Mesh{}, fmt.Errorf("%w: normal index %d out of bounds", ErrBadOBJ, c.n+1)
			}
		}
	}

	computed := len(normals) == 0
	if computed {
		normals = averageNormals(positions, faces)
	}

	mesh := mapgen.Mesh{
		Vertices: make([]float32, 0, len(faces)*3*mapgen.VertexSize),
		Indices:  make([]uint32, 0, len(faces)*3),
	}
	for _, f := range faces {
		for _, c := range f {
			p := positions[c.v]
			var n mgl32.Vec3
			switch {
			case computed:
				n = normals[c.v]
			case c.n >= 0:
				n = normals[c.n]
			}
			var uv mgl32.Vec2
			if c.t >= 0 {
				uv = uvs[c.t]
			}
			mesh.Indices = append(mesh.Indices, uint32(mesh.VertexCount()))
			mesh.Vertices = append(mesh.Vertices,
				p[0], p[1], p[2],
				n[0], n[1], n[2],
				0, 0, 0,
				uv[0], uv[1],
			)
		}
	}
	return mesh, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseVec3(parts []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(parts) < 4 {
		return v, fmt.Errorf("%s needs 3 values", parts[0])
	}
	for i := range 3 {
		f, err := parseFloat(parts[i+1])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func parseFace(corners []string, nv, nt, nn int) ([]objFace, error) {
	switch {
	case len(corners) < 3:
		return nil, errors.New("f needs 3 or 4 vertices")
	case len(corners) > 4:
		return nil, errors.New("f with more than 4 vertices")
	}
	cs := make([]objCorner, len(corners))
	for i, s := range corners {
		c, err := parseCorner(s, nv, nt, nn)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	if len(cs) == 3 {
		return []objFace{{cs[0], cs[1], cs[2]}}, nil
	}
	return []objFace{{cs[0], cs[1], cs[2]}, {cs[0], cs[2], cs[3]}}, nil
}

// parseCorner reads v, v/t, v/t/n or v//n. Indices are 1-based in the file; negative
// indices count back from the last v, vt or vn read so far.
func parseCorner(s string, nv, nt, nn int) (objCorner, error) {
	c := objCorner{t: -1, n: -1}
	fields := strings.Split(s, "/")
	if len(fields) > 3 {
		return c, fmt.Errorf("face corner %q has more than 3 parts", s)
	}
	idx := func(f string, count int) (int, error) {
		i, err := strconv.Atoi(f)
		switch {
		case err != nil:
			return 0, err
		case i == 0:
			return 0, fmt.Errorf("face corner %q uses index 0", s)
		case i > 0:
			return i - 1, nil
		case count+i < 0:
			return 0, fmt.Errorf("face corner %q reaches before the first element", s)
		}
		return count + i, nil
	}
	var err error
	if c.v, err = idx(fields[0], nv); err != nil {
		return c, err
	}
	if len(fields) > 1 && fields[1] != "" {
		if c.t, err = idx(fields[1], nt); err != nil {
			return c, err
		}
	}
	if len(fields) > 2 {
		if c.n, err = idx(fields[2], nn); err != nil {
			return c, err
		}
	}
	return c, nil
}

func averageNormals(positions []mgl32.Vec3, faces []objFace) []mgl32.Vec3 {
	sum := make([]mgl32.Vec3, len(positions))
	degree := make([]int, len(positions))
	for _, f := range faces {
		a, b, c := positions[f[0].v], positions[f[1].v], positions[f[2].v]
		n := a.Sub(b).Cross(a.Sub(c))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		for _, corner := range f {
			sum[corner.v] = sum[corner.v].Add(n)
			degree[corner.v]++
		}
	}
	for i := range sum {
		if degree[i] > 0 {
			sum[i] = sum[i].Mul(1 / float32(degree[i]))
		}
	}
	return sum
}
