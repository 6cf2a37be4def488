package graphics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"

	"maze-game/internal/config"
	"maze-game/internal/input"
)

// ErrWindow is returned when the window or its GL context could not be created.
var ErrWindow = errors.New("window not ready")

// keyCodes maps the game's keys to raylib key codes.
var keyCodes = map[input.Key]int32{
	input.KeyEscape: rl.KeyEscape,
	input.KeySpace:  rl.KeySpace,
	input.KeyP:      rl.KeyP,
	input.KeyW:      rl.KeyW,
	input.KeyA:      rl.KeyA,
	input.KeyS:      rl.KeyS,
	input.KeyD:      rl.KeyD,
}

// Loop is what the window drives: it receives input and renders frames.
type Loop interface {
	input.Handler
	// Due reports whether enough time passed to run the next frame.
	Due() bool
	// Frame simulates and renders one frame.
	Frame()
}

// Logger receives raylib's trace messages.
type Logger interface {
	Logf(format string, args ...any)
}

// RouteTrace sends raylib warnings and errors to log instead of stderr.
func RouteTrace(log Logger) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetTraceLogCallback(func(level int, text string) {
		log.Logf("raylib: %s", text)
	})
}

// Window is the raylib window and its OpenGL 3.3 context.
type Window struct {
	width, height int
	closing       bool
	cursor        rl.Vector2
	cursorSeen    bool
}

// Open creates the window, captures the cursor and loads the GL entry points.
func Open(cfg config.Window) (*Window, error) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)

	width, height := cfg.Width, cfg.Height
	rl.InitWindow(int32(width), int32(height), cfg.Title)
	if !rl.IsWindowReady() {
		return nil, ErrWindow
	}
	if cfg.Fullscreen {
		m := rl.GetCurrentMonitor()
		width, height = rl.GetMonitorWidth(m), rl.GetMonitorHeight(m)
		rl.SetWindowSize(width, height)
	}
	if err := gl.Init(); err != nil {
		rl.CloseWindow()
		return nil, fmt.Errorf("%w: %v", ErrWindow, err)
	}

	// Escape is a game key; closing goes through RequestClose.
	rl.SetExitKey(rl.KeyNull)
	// Frames are paced by Loop.Due alone; raylib's sleeping limiter stays off.
	rl.SetTargetFPS(0)
	rl.DisableCursor()
	return &Window{width: width, height: height}, nil
}

// Size returns the current window size in pixels.
func (w *Window) Size() (int, int) { return w.width, w.height }

// RequestClose makes the loop stop after the current frame.
func (w *Window) RequestClose() { w.closing = true }

// ShouldClose reports whether the user or the game asked to close.
func (w *Window) ShouldClose() bool {
	return w.closing || rl.WindowShouldClose()
}

// driver is the part of the window the frame loop touches.
type driver interface {
	ShouldClose() bool
	beginFrame()
	endFrame()
	poll(h input.Handler)
}

// Run drives loop until close is requested. Input polled at the end of a frame is
// delivered before the next frame runs.
func (w *Window) Run(loop Loop) { run(w, loop) }

// run spins on loop.Due without sleeping and processes a frame whenever it is due.
func run(d driver, loop Loop) {
	for !d.ShouldClose() {
		if !loop.Due() {
			continue
		}
		d.beginFrame()
		loop.Frame()
		d.endFrame()
		d.poll(loop)
	}
}

func (w *Window) beginFrame() { rl.BeginDrawing() }
func (w *Window) endFrame()   { rl.EndDrawing() }

// poll forwards key transitions, cursor moves and resizes to h.
func (w *Window) poll(h input.Handler) {
	for _, k := range input.Keys {
		code := keyCodes[k]
		if rl.IsKeyPressed(code) {
			h.HandleKey(k, true)
		}
		if rl.IsKeyReleased(code) {
			h.HandleKey(k, false)
		}
	}

	pos := rl.GetMousePosition()
	if !w.cursorSeen || pos != w.cursor {
		w.cursor, w.cursorSeen = pos, true
		h.HandleCursor(pos.X, pos.Y)
	}

	if rl.IsWindowResized() {
		w.width, w.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		h.HandleResize(w.width, w.height)
	}
}

// Close destroys the window and its context.
func (w *Window) Close() {
	rl.EnableCursor()
	rl.CloseWindow()
}

// Clock reads raylib's timer, in seconds since the window opened.
type Clock struct{}

func (Clock) Now() float64 { return rl.GetTime() }
