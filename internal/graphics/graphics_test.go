package graphics

import (
	"slices"
	"testing"

	"maze-game/internal/input"
)

// fakeDriver closes after a fixed number of loop checks and records frame calls.
type fakeDriver struct {
	checks, closeAfter int
	events             *[]string
}

func (d *fakeDriver) ShouldClose() bool {
	d.checks++
	return d.checks > d.closeAfter
}

func (d *fakeDriver) beginFrame()        { *d.events = append(*d.events, "begin") }
func (d *fakeDriver) endFrame()          { *d.events = append(*d.events, "end") }
func (d *fakeDriver) poll(input.Handler) { *d.events = append(*d.events, "poll") }

// fakeLoop is due on a fixed schedule.
type fakeLoop struct {
	due    []bool
	calls  int
	events *[]string
}

func (l *fakeLoop) Due() bool {
	d := l.due[l.calls%len(l.due)]
	l.calls++
	return d
}

func (l *fakeLoop) Frame()                        { *l.events = append(*l.events, "frame") }
func (l *fakeLoop) HandleKey(input.Key, bool)     {}
func (l *fakeLoop) HandleCursor(float32, float32) {}
func (l *fakeLoop) HandleResize(int, int)         {}

func TestRunFramesOnlyWhenDue(t *testing.T) {
	tests := []struct {
		name       string
		due        []bool
		iterations int
		frames     int
	}{
		{"always due", []bool{true}, 4, 4},
		{"never due", []bool{false}, 6, 0},
		{"every third check", []bool{false, false, true}, 9, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []string
			d := &fakeDriver{closeAfter: tt.iterations, events: &events}
			l := &fakeLoop{due: tt.due, events: &events}
			run(d, l)

			if l.calls != tt.iterations {
				t.Errorf("Due checked %d times, want %d", l.calls, tt.iterations)
			}
			var want []string
			for range tt.frames {
				want = append(want, "begin", "frame", "end", "poll")
			}
			if !slices.Equal(events, want) {
				t.Errorf("events = %v, want %v", events, want)
			}
		})
	}
}
