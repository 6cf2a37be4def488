package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/camera"
	"maze-game/internal/resource"
)

// Uniform names shared by every material.
const (
	WorldUniform      = "world_mat"
	NormalUniform     = "normal_mat"
	TextureUniform    = "texture_map"
	SkyboxUniform     = "skybox_map"
	OverlayUniform    = "overlay"
	TimerUniform      = "timer"
	ProximityUniform  = "proximity"
	FogColorUniform   = "fogColor"
	FogDensityUniform = "fogDensity"
	FogFactorUniform  = "fogFactor"
)

// Fog settings pushed with every node.
var (
	FogColor   = mgl32.Vec3{0.8, 0.8, 0.8}
	FogDensity = float32(0.02)
	FogFactor  = float32(2.0)
)

// Surface is where the graph submits draw work. The graphics package implements it on
// OpenGL. Uniform setters apply to the material selected by the last UseMaterial and
// silently ignore names the material does not declare.
type Surface interface {
	UseMaterial(m *resource.Resource)
	// BindGeometry binds the buffers of a mesh or point set and points the current
	// material's vertex attributes at them.
	BindGeometry(g *resource.Resource)
	SetMatrix(name string, m mgl32.Mat4)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	// BindTexture binds a texture or cubemap to unit and points the sampler at it.
	BindTexture(unit int, uniform string, t *resource.Resource)
	// SetBlend toggles additive alpha blending (SRC_ALPHA, ONE).
	SetBlend(additive bool)
	// SetDepthFunc switches between LESS and LEQUAL depth comparison.
	SetDepthFunc(lequal bool)
	SetDepthTest(enabled bool)
	DrawIndexed(count int)
	DrawPoints(count int)
}

// Viewer pushes view and projection matrices. *camera.Camera satisfies it.
type Viewer interface {
	Apply(u camera.UniformSetter)
}

// Target is the off-screen colour and depth buffer the scene renders into before the
// full-screen composite.
type Target interface {
	// Begin binds the target, sets its viewport and clears it with background.
	Begin(background mgl32.Vec3)
	// End restores the default framebuffer and the previous viewport.
	End()
	// Texture returns the colour attachment.
	Texture() *resource.Resource
	// DrawQuad draws the full-screen quad (position 3 + uv 2 floats per vertex) with the
	// current material.
	DrawQuad()
}
