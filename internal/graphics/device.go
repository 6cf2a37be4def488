package graphics

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/mapgen"
	"maze-game/internal/resource"
)

const floatSize = int32(unsafe.Sizeof(float32(0)))

// ErrShader is returned when a shader stage fails to compile or a program fails to link.
var ErrShader = errors.New("shader error")

// vertexAttribs are the per-vertex inputs every material may declare, in buffer order.
var vertexAttribs = []struct {
	name   string
	size   int32
	offset int
}{
	{"vertex", 3, mapgen.PositionOffset},
	{"normal", 3, mapgen.NormalOffset},
	{"color", 3, mapgen.ColorOffset},
	{"uv", 2, mapgen.UVOffset},
}

// quadVertices is the full-screen quad: position (3) and uv (2) per vertex.
var quadVertices = []float32{
	-1, -1, 0, 0, 0,
	1, -1, 0, 1, 0,
	-1, 1, 0, 0, 1,
	-1, 1, 0, 0, 1,
	1, -1, 0, 1, 0,
	1, 1, 0, 1, 1,
}

// Device issues the raw OpenGL calls for the scene. It uploads resources for the
// registry, implements the draw surface, and brackets its work with Begin and End so
// raylib's own batch renderer finds its state untouched.
type Device struct {
	vao  uint32
	quad uint32

	program  uint32
	uniforms map[uint32]map[string]int32
	attribs  map[uint32]map[string]int32
	enabled  []uint32
}

// NewDevice creates the vertex array and the full-screen quad. The GL context must be
// current.
func NewDevice() *Device {
	d := &Device{
		uniforms: make(map[uint32]map[string]int32),
		attribs:  make(map[uint32]map[string]int32),
	}
	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.quad)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quad)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*int(floatSize), gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return d
}

// Begin flushes raylib's pending draws and sets up depth-tested, unculled, unblended
// rendering.
func (d *Device) Begin() {
	rl.DrawRenderBatchActive()
	gl.BindVertexArray(d.vao)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
}

// End restores the state raylib expects.
func (d *Device) End() {
	d.disableAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.UseProgram(0)
	d.program = 0
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
}

// Close deletes the vertex array and the quad buffer.
func (d *Device) Close() {
	gl.DeleteBuffers(1, &d.quad)
	gl.DeleteVertexArrays(1, &d.vao)
}

// CompileMaterial compiles and links a program. geometry may be empty.
func (d *Device) CompileMaterial(vertex, fragment, geometry string) (uint32, error) {
	stages := []struct {
		kind   uint32
		source string
	}{
		{gl.VERTEX_SHADER, vertex},
		{gl.FRAGMENT_SHADER, fragment},
		{gl.GEOMETRY_SHADER, geometry},
	}

	program := gl.CreateProgram()
	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range stages {
		if st.source == "" {
			continue
		}
		s, err := compileShader(st.source, st.kind)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, s)
		shaders = append(shaders, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: link: %s", ErrShader, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShader, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// UploadMesh copies m into a vertex and an element buffer.
func (d *Device) UploadMesh(m mapgen.Mesh) (uint32, uint32, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return 0, 0, mapgen.ErrInvalidSize
	}
	var vbo, ebo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(floatSize), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return vbo, ebo, nil
}

// UploadPoints copies p into a vertex buffer.
func (d *Device) UploadPoints(p mapgen.PointSet) (uint32, error) {
	if len(p.Vertices) == 0 {
		return 0, mapgen.ErrInvalidSize
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(p.Vertices)*int(floatSize), gl.Ptr(p.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo, nil
}

// Release frees the GL objects behind r.
func (d *Device) Release(r *resource.Resource) {
	switch r.Kind {
	case resource.Material:
		gl.DeleteProgram(r.Handle)
		delete(d.uniforms, r.Handle)
		delete(d.attribs, r.Handle)
	case resource.Mesh:
		gl.DeleteBuffers(1, &r.Handle)
		gl.DeleteBuffers(1, &r.Elements)
	case resource.PointSet:
		gl.DeleteBuffers(1, &r.Handle)
	case resource.Texture, resource.Cubemap:
		gl.DeleteTextures(1, &r.Handle)
	}
}

// UseMaterial selects m's program.
func (d *Device) UseMaterial(m *resource.Resource) {
	d.program = m.Handle
	gl.UseProgram(d.program)
}

// BindGeometry binds g's buffers and points the current program's vertex inputs at
// them. Inputs the program does not declare are skipped.
func (d *Device) BindGeometry(g *resource.Resource) {
	d.disableAttribs()
	gl.BindBuffer(gl.ARRAY_BUFFER, g.Handle)
	if g.Kind == resource.Mesh {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.Elements)
	}
	stride := mapgen.VertexSize * floatSize
	for _, a := range vertexAttribs {
		d.pointAttrib(a.name, a.size, stride, a.offset)
	}
}

func (d *Device) pointAttrib(name string, size, stride int32, offset int) {
	loc := d.attrib(name)
	if loc < 0 {
		return
	}
	index := uint32(loc)
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset*int(floatSize)))
	d.enabled = append(d.enabled, index)
}

func (d *Device) disableAttribs() {
	for _, index := range d.enabled {
		gl.DisableVertexAttribArray(index)
	}
	d.enabled = d.enabled[:0]
}

func (d *Device) attrib(name string) int32 {
	cache, ok := d.attribs[d.program]
	if !ok {
		cache = make(map[string]int32)
		d.attribs[d.program] = cache
	}
	loc, ok := cache[name]
	if !ok {
		loc = gl.GetAttribLocation(d.program, gl.Str(name+"\x00"))
		cache[name] = loc
	}
	return loc
}

func (d *Device) uniform(name string) int32 {
	cache, ok := d.uniforms[d.program]
	if !ok {
		cache = make(map[string]int32)
		d.uniforms[d.program] = cache
	}
	loc, ok := cache[name]
	if !ok {
		loc = gl.GetUniformLocation(d.program, gl.Str(name+"\x00"))
		cache[name] = loc
	}
	return loc
}

func (d *Device) SetMatrix(name string, m mgl32.Mat4) {
	if loc := d.uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (d *Device) SetFloat(name string, v float32) {
	if loc := d.uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (d *Device) SetVec3(name string, v mgl32.Vec3) {
	if loc := d.uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// BindTexture binds t to unit and points the sampler uniform at it.
func (d *Device) BindTexture(unit int, uniform string, t *resource.Resource) {
	if loc := d.uniform(uniform); loc >= 0 {
		gl.Uniform1i(loc, int32(unit))
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if t.Kind == resource.Cubemap {
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.Handle)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, t.Handle)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (d *Device) SetBlend(additive bool) {
	if additive {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		return
	}
	gl.Disable(gl.BLEND)
}

func (d *Device) SetDepthFunc(lequal bool) {
	if lequal {
		gl.DepthFunc(gl.LEQUAL)
		return
	}
	gl.DepthFunc(gl.LESS)
}

func (d *Device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
}

func (d *Device) DrawIndexed(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, 0)
}

func (d *Device) DrawPoints(count int) {
	gl.DrawArrays(gl.POINTS, 0, int32(count))
}

// drawQuad draws the full-screen quad with the current program.
func (d *Device) drawQuad() {
	d.disableAttribs()
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quad)
	stride := 5 * floatSize
	d.pointAttrib("position", 3, stride, 0)
	d.pointAttrib("uv", 2, stride, 3)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}
