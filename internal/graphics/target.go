package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/resource"
)

// Off-screen buffer size. The composite stretches it over the window.
const (
	TargetWidth  = 1920
	TargetHeight = 1080
)

// ErrTarget is returned when the off-screen buffer could not be created.
var ErrTarget = errors.New("render target not ready")

// Target is a raylib render texture with a depth buffer, drawn through the device.
type Target struct {
	device  *Device
	rt      rl.RenderTexture2D
	texture *resource.Resource
}

// NewTarget allocates a TargetWidth x TargetHeight colour and depth buffer.
func NewTarget(d *Device) (*Target, error) {
	rt := rl.LoadRenderTexture(TargetWidth, TargetHeight)
	if !rl.IsRenderTextureValid(rt) {
		return nil, ErrTarget
	}
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	return &Target{
		device: d,
		rt:     rt,
		texture: &resource.Resource{
			Kind:   resource.Texture,
			Name:   "scene target",
			Handle: rt.Texture.ID,
		},
	}, nil
}

// Begin binds the buffer, sets the viewport to its size and clears it.
func (t *Target) Begin(background mgl32.Vec3) {
	rl.BeginTextureMode(t.rt)
	rl.ClearBackground(rl.NewColor(channel(background[0]), channel(background[1]), channel(background[2]), 0))
	t.device.Begin()
}

// End returns to the window framebuffer and viewport.
func (t *Target) End() {
	t.device.End()
	rl.EndTextureMode()
}

func (t *Target) Texture() *resource.Resource { return t.texture }

func (t *Target) DrawQuad() { t.device.drawQuad() }

// Close frees the buffer.
func (t *Target) Close() {
	rl.UnloadRenderTexture(t.rt)
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
