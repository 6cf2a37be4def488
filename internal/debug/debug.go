package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the optional overlay in the top-right corner after the composite pass.
// All lines are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// Status, when set, adds a line such as the phase and gem count.
	Status func() string

	frameCount uint32
	fpsText    string
	memText    string
	statusText string
	memStats   runtime.MemStats
}

// New returns a Debug with every overlay hidden.
func New() *Debug {
	return &Debug{}
}

// Enabled reports whether any line is drawn.
func (d *Debug) Enabled() bool {
	return d.ShowFPS || d.ShowMemAlloc || d.Status != nil
}

// tick advances the frame counter and refreshes the text every updateInterval frames, or
// immediately when a shown line has no text yet.
func (d *Debug) tick(fps int32) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.fpsText == "") ||
		(d.ShowMemAlloc && d.memText == "") ||
		(d.Status != nil && d.statusText == "")
	if !update {
		return
	}
	if d.ShowFPS {
		d.fpsText = fmt.Sprintf("FPS: %d", fps)
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.memStats)
		d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
	}
	if d.Status != nil {
		d.statusText = d.Status()
	}
}

// Lines returns the text currently shown, top to bottom.
func (d *Debug) Lines() []string {
	var out []string
	if d.ShowFPS && d.fpsText != "" {
		out = append(out, d.fpsText)
	}
	if d.ShowMemAlloc && d.memText != "" {
		out = append(out, d.memText)
	}
	if d.Status != nil && d.statusText != "" {
		out = append(out, d.statusText)
	}
	return out
}

// Draw renders the enabled lines right-aligned in green.
func (d *Debug) Draw() {
	if !d.Enabled() {
		return
	}
	d.tick(rl.GetFPS())
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.Lines() {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
