// Package input defines the window events the game reacts to, independent of the
// windowing library.
package input

// Key identifies a keyboard key the game listens to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyP
	KeyW
	KeyA
	KeyS
	KeyD
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyP:
		return "P"
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	}
	return "Unknown"
}

// Keys lists every key a window reports, in polling order.
var Keys = []Key{KeyEscape, KeySpace, KeyP, KeyW, KeyA, KeyS, KeyD}

// Handler receives events polled from the window, synchronously, before the frame runs.
type Handler interface {
	HandleKey(k Key, pressed bool)
	HandleCursor(x, y float32)
	HandleResize(width, height int)
}
