package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MouseSensitivity converts cursor movement in pixels to radians of yaw/pitch.
const MouseSensitivity = 0.002

// MaxPitch is the limit on looking up or down, in radians (85°).
var MaxPitch = mgl32.DegToRad(85)

// Uniform names the camera pushes into every material.
const (
	ViewUniform       = "view_mat"
	ProjectionUniform = "projection_mat"
)

// UniformSetter receives the camera matrices. scene.Surface satisfies it.
type UniformSetter interface {
	SetMatrix(name string, m mgl32.Mat4)
}

// Camera is a first-person camera. Its view directions are the base forward/up vectors
// rotated by orientation; the camera looks along -Forward().
//
// Yaw and pitch only exist for mouse-look: any explicit orientation change resets them
// and re-arms the first-sample flag, so the next cursor sample becomes the reference
// point instead of producing a jump.
type Camera struct {
	position    mgl32.Vec3
	forward     mgl32.Vec3
	up          mgl32.Vec3
	orientation mgl32.Quat

	yaw, pitch     float32
	mouseStart     bool
	mouseX, mouseY float32

	projection mgl32.Mat4
}

// New returns a camera at the origin looking along -Z with +Y up.
func New() *Camera {
	c := &Camera{projection: mgl32.Ident4()}
	c.SetView(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0})
	return c
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// SetPosition moves the camera without touching its orientation.
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

// Orientation returns the current orientation quaternion.
func (c *Camera) Orientation() mgl32.Quat { return c.orientation }

// Yaw returns the accumulated mouse-look yaw in radians.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the accumulated mouse-look pitch in radians.
func (c *Camera) Pitch() float32 { return c.pitch }

// Forward returns the rotated base forward vector.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.orientation.Rotate(c.forward).Normalize()
}

// Up returns the rotated base up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return c.orientation.Rotate(c.up).Normalize()
}

// Side returns Forward × Up.
func (c *Camera) Side() mgl32.Vec3 {
	return c.Forward().Cross(c.Up()).Normalize()
}

// PlayerForward returns the base forward vector rotated by yaw only, ignoring pitch.
func (c *Camera) PlayerForward() mgl32.Vec3 {
	return mgl32.QuatRotate(c.yaw, c.up).Rotate(c.forward).Normalize()
}

// SetOrientation replaces the orientation and resets the mouse-look state.
func (c *Camera) SetOrientation(q mgl32.Quat) {
	c.orientation = q.Normalize()
	c.mouseStart = true
	c.mouseX, c.mouseY = 0, 0
	c.yaw, c.pitch = 0, 0
}

// SetView places the camera and sets its base vectors, then resets the orientation.
func (c *Camera) SetView(position, forward, up mgl32.Vec3) {
	c.position = position
	c.forward = forward.Normalize()
	c.up = up.Normalize()
	c.SetOrientation(mgl32.QuatIdent())
}

// Look integrates a cursor sample. The first sample after a reset only records the
// cursor; later samples turn the deltas into yaw about the base up vector and pitch about
// the current side vector.
func (c *Camera) Look(x, y float32) {
	if c.mouseStart {
		c.mouseStart = false
		c.mouseX, c.mouseY = x, y
		c.yaw, c.pitch = 0, 0
	}
	dx := (x - c.mouseX) * MouseSensitivity
	dy := (y - c.mouseY) * MouseSensitivity
	c.mouseX, c.mouseY = x, y

	c.yaw += dx
	c.pitch = mgl32.Clamp(c.pitch+dy, -MaxPitch, MaxPitch)

	c.orientation = mgl32.QuatRotate(c.yaw, c.up).Normalize()
	c.orientation = mgl32.QuatRotate(c.pitch, c.Side()).Mul(c.orientation).Normalize()
}

// SetProjection builds a symmetric perspective frustum. fov is the vertical field of view
// in degrees; width and height give the aspect ratio.
func (c *Camera) SetProjection(fov, near, far, width, height float32) {
	top := math32.Tan(mgl32.DegToRad(fov/2)) * near
	right := top * (width / height)
	c.projection = mgl32.Frustum(-right, right, -top, top, near, far)
}

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// View returns the view matrix built from the side/up/forward basis and the position.
func (c *Camera) View() mgl32.Mat4 {
	f, s, u := c.Forward(), c.Side(), c.Up()
	rot := mgl32.Mat4FromRows(
		mgl32.Vec4{s[0], s[1], s[2], 0},
		mgl32.Vec4{u[0], u[1], u[2], 0},
		mgl32.Vec4{f[0], f[1], f[2], 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
	return rot.Mul4(mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2]))
}

// Apply pushes the view and projection matrices to the active material.
func (c *Camera) Apply(u UniformSetter) {
	u.SetMatrix(ViewUniform, c.View())
	u.SetMatrix(ProjectionUniform, c.projection)
}
