// Package game runs The Maze: the phase state machine, player movement and collisions,
// the monster chase and the per-frame animation of the scene.
package game

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/audio"
	"maze-game/internal/camera"
	"maze-game/internal/config"
	"maze-game/internal/input"
	"maze-game/internal/physics"
	"maze-game/internal/resource"
	"maze-game/internal/scene"
)

// Phase is the state of a run.
type Phase int

const (
	Start Phase = iota
	Playing
	Lost
	Won
	Paused
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

const (
	// MoveSpeed is the distance the player covers per frame.
	MoveSpeed = 0.1
	// MonsterSpeed is the monster's speed relative to the player.
	MonsterSpeed = 0.4
	// EyeHeight is how far above the terrain the camera and the monster float.
	EyeHeight = 1.0

	CatchDistance  = 1.0
	PortalDistance = 1.5
	GemDistance    = 1.0

	// PauseDebounce is the minimum time in seconds between two pause toggles.
	PauseDebounce = 0.5

	statsInterval = 10.0
)

// Where the player stands when a run starts.
var (
	StartPosition = mgl32.Vec3{2, 1, 2}
	StartForward  = mgl32.Vec3{-1, 0, -1}
	Up            = mgl32.Vec3{0, 1, 0}
)

// hidden is where collected gems are moved to.
var hidden = mgl32.Vec3{-10, -10, -10}

// Renderer is the surface the game draws through. Begin and End bracket the work done
// outside the off-screen target.
type Renderer interface {
	scene.Surface
	Begin()
	End()
}

// Closer ends the main loop.
type Closer interface {
	RequestClose()
}

// Overlay is drawn on top of the composite, after the renderer is released.
type Overlay interface {
	Draw()
}

// Logger is the subset of logger.Logger the game reports to.
type Logger interface {
	Logf(format string, args ...any)
}

// Deps are the collaborators of a Game. Music, Overlay and Log may be nil.
type Deps struct {
	Clock    scene.Clock
	Graph    *scene.Graph
	Registry *resource.Registry
	World    *physics.World
	Renderer Renderer
	Target   scene.Target
	Closer   Closer
	Music    audio.Player
	Overlay  Overlay
	Log      Logger
}

// Gem is a collectible placed in the maze.
type Gem struct {
	Node      scene.NodeID
	Location  mgl32.Vec2
	Collected bool
}

// Game owns the camera and the phase, and drives the scene each frame.
type Game struct {
	Deps
	Camera *camera.Camera

	fps    float64
	lens   config.Camera
	width  int
	height int

	phase     Phase
	lastFrame float64
	pausedAt  float64
	moving    map[input.Key]bool
	distance  float32

	skybox, monster, portal scene.NodeID
	crows                   [3]scene.NodeID
	gems                    []Gem

	overlayShader, proximityShader *resource.Resource
	title, paused, win, loss       *resource.Resource

	frames     int
	statsStart float64
}

// New binds the game to the named nodes and resources of a built scene. Skybox, Monster
// and Portal nodes are required; crows and gems named Crow1..Crow3 and Gem0..GemN are
// animated when present.
func New(d Deps, window config.Window, lens config.Camera) (*Game, error) {
	g := &Game{
		Deps:   d,
		Camera: camera.New(),
		fps:    float64(window.FPS),
		lens:   lens,
		moving: make(map[input.Key]bool),
		crows:  [3]scene.NodeID{scene.None, scene.None, scene.None},
	}
	if g.fps <= 0 {
		g.fps = 60
	}

	for _, n := range []struct {
		name string
		id   *scene.NodeID
	}{
		{"Skybox", &g.skybox},
		{"Monster", &g.monster},
		{"Portal", &g.portal},
	} {
		id, ok := d.Graph.Find(n.name)
		if !ok {
			return nil, fmt.Errorf("scene node %q: %w", n.name, resource.ErrNotFound)
		}
		*n.id = id
	}
	for i := range g.crows {
		if id, ok := d.Graph.Find(fmt.Sprintf("Crow%d", i+1)); ok {
			g.crows[i] = id
		}
	}
	for i := 0; ; i++ {
		id, ok := d.Graph.Find(fmt.Sprintf("Gem%d", i))
		if !ok {
			break
		}
		p := d.Graph.Node(id).Position()
		g.gems = append(g.gems, Gem{Node: id, Location: mgl32.Vec2{p.X(), p.Z()}})
	}

	for _, r := range []struct {
		name string
		kind resource.Kind
		dst  **resource.Resource
	}{
		{"OverlayShader", resource.Material, &g.overlayShader},
		{"ProximityShader", resource.Material, &g.proximityShader},
		{"TitleTexture", resource.Texture, &g.title},
		{"PausedTexture", resource.Texture, &g.paused},
		{"WinTexture", resource.Texture, &g.win},
		{"LossTexture", resource.Texture, &g.loss},
	} {
		res, err := d.Registry.Expect(r.name, r.kind)
		if err != nil {
			return nil, err
		}
		*r.dst = res
	}

	g.Camera.SetView(StartPosition, StartForward, Up)
	g.HandleResize(window.Width, window.Height)
	g.lastFrame = d.Clock.Now()
	g.statsStart = g.lastFrame
	return g, nil
}

func (g *Game) logf(format string, args ...any) {
	if g.Log != nil {
		g.Log.Logf(format, args...)
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Gems returns the gems in placement order.
func (g *Game) Gems() []Gem { return g.gems }

// Collected returns how many gems were picked up.
func (g *Game) Collected() int {
	n := 0
	for _, gem := range g.gems {
		if gem.Collected {
			n++
		}
	}
	return n
}

// Distance returns the monster's distance to the player measured in the last playing
// frame.
func (g *Game) Distance() float32 { return g.distance }

// Status is a one-line summary for the debug overlay.
func (g *Game) Status() string {
	return fmt.Sprintf("%s  gems %d/%d  monster %.1f", g.phase, g.Collected(), len(g.gems), g.distance)
}

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	g.logf("phase %s -> %s", g.phase, p)
	g.phase = p
}

// HandleKey reacts to key transitions. Escape closes the game in every phase.
func (g *Game) HandleKey(k input.Key, pressed bool) {
	if k == input.KeyEscape && pressed {
		if g.Closer != nil {
			g.Closer.RequestClose()
		}
		return
	}

	now := g.Clock.Now()
	switch g.phase {
	case Start:
		if k == input.KeySpace && pressed {
			g.Camera.SetView(StartPosition, StartForward, Up)
			g.setPhase(Playing)
		}
		return
	case Playing:
		if k == input.KeyP && pressed && now-g.pausedAt > PauseDebounce {
			g.pausedAt = now
			g.setPhase(Paused)
			return
		}
	case Paused:
		if k == input.KeyP && pressed && now-g.pausedAt > PauseDebounce {
			g.pausedAt = now
			clear(g.moving)
			g.setPhase(Playing)
		}
		return
	}

	switch k {
	case input.KeyW, input.KeyA, input.KeyS, input.KeyD:
		g.moving[k] = pressed
	}
}

// HandleCursor turns the camera while playing.
func (g *Game) HandleCursor(x, y float32) {
	if g.phase != Playing {
		return
	}
	g.Camera.Look(x, y)
}

// HandleResize rebuilds the projection for the new aspect ratio.
func (g *Game) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.Camera.SetProjection(g.lens.FOV, g.lens.Near, g.lens.Far, float32(width), float32(height))
}

// Due reports whether a full frame interval has passed since the last frame.
func (g *Game) Due() bool {
	return g.Clock.Now()-g.lastFrame >= 1/g.fps
}

// Frame advances the simulation by one step and renders it.
func (g *Game) Frame() {
	g.lastFrame = g.Clock.Now()
	g.Update()
	g.Render()
	if g.Music != nil {
		g.Music.Update()
	}
	g.stats()
}

// Update animates the scene and runs the phase logic for one frame.
func (g *Game) Update() {
	t := g.Graph.Now()
	g.animateCrows(t)
	g.spinGems(t)

	switch g.phase {
	case Start:
		g.orbitCamera(t)
	case Playing:
		g.chase()
		g.move()
	}
	g.Graph.Node(g.skybox).SetPosition(g.Camera.Position())
}

// Render draws the scene into the target and composites it with the phase's overlay.
func (g *Game) Render() {
	g.Graph.DrawToTarget(g.Renderer, g.Target, g.Camera)

	g.Renderer.Begin()
	switch g.phase {
	case Start:
		g.Graph.Composite(g.Renderer, g.Target, g.overlayShader, 0, g.title)
	case Playing:
		g.Graph.Composite(g.Renderer, g.Target, g.proximityShader, g.distance, nil)
	case Lost:
		g.Graph.Composite(g.Renderer, g.Target, g.overlayShader, 0, g.loss)
	case Won:
		g.Graph.Composite(g.Renderer, g.Target, g.overlayShader, 0, g.win)
	case Paused:
		g.Graph.Composite(g.Renderer, g.Target, g.overlayShader, 0, g.paused)
	}
	g.Renderer.End()

	if g.Overlay != nil {
		g.Overlay.Draw()
	}
}

func (g *Game) stats() {
	g.frames++
	elapsed := g.lastFrame - g.statsStart
	if elapsed < statsInterval {
		return
	}
	g.logf("%.1f fps over %.0fs, %s", float64(g.frames)/elapsed, elapsed, g.Status())
	g.frames = 0
	g.statsStart = g.lastFrame
}

// facing returns the heading that looks along an orbit at angle a.
func facing(a float32) float32 {
	sign := float32(1)
	if math32.Sin(a) > 0 {
		sign = -1
	}
	return math32.Acos(math32.Cos(a)) * sign
}

// crowOrbits are the radius, height, speed and start angle of each crow. The second
// orbit is mirrored on x.
var crowOrbits = [3]struct {
	radius, height, speed, start float32
	mirror                       bool
}{
	{25, 25, 0.25, 10, false},
	{30, 30, 0.23, 70, true},
	{20, 35, 0.3, 30, false},
}

// MapCentre is the point the crows and the title camera circle.
var MapCentre = mgl32.Vec2{55, 55}

func (g *Game) animateCrows(t float32) {
	pitch := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0}).Normalize()
	for i, id := range g.crows {
		if id == scene.None {
			continue
		}
		o := crowOrbits[i]
		a := o.start + t*o.speed
		x := math32.Cos(a) * o.radius
		heading := facing(a)
		if o.mirror {
			x, heading = -x, -heading
		}
		n := g.Graph.Node(id)
		n.SetPosition(mgl32.Vec3{MapCentre.X() + x, o.height, MapCentre.Y() + math32.Sin(a)*o.radius})
		n.SetOrientation(mgl32.QuatRotate(heading, Up))
		n.Rotate(pitch)
	}
}

func (g *Game) spinGems(t float32) {
	q := mgl32.QuatRotate(t, Up).Normalize()
	for _, gem := range g.gems {
		g.Graph.Node(gem.Node).SetOrientation(q)
	}
}

// orbitCamera circles the title camera around the map centre, facing inward.
func (g *Game) orbitCamera(t float32) {
	a := t * 0.1
	g.Camera.SetPosition(mgl32.Vec3{MapCentre.X() + math32.Cos(a)*55, 15, MapCentre.Y() + math32.Sin(a)*55})
	g.Camera.SetOrientation(mgl32.QuatRotate(facing(a)+1.25*math32.Pi, Up))
}

// chase moves the monster toward the player. The catch test uses the distance from
// before the move.
func (g *Game) chase() {
	n := g.Graph.Node(g.monster)
	cam := g.Camera.Position()
	dir := cam.Sub(n.Position())
	g.distance = dir.Len()

	p := n.Position()
	if g.distance > 0 {
		p = p.Add(dir.Normalize().Mul(MoveSpeed * MonsterSpeed))
	}
	p[1] = EyeHeight + g.Registry.Height(p.X(), p.Z())
	n.SetPosition(p)

	if g.distance <= CatchDistance {
		g.setPhase(Lost)
	}
}

// step returns the movement for the first held key in W, A, S, D order.
func (g *Game) step() mgl32.Vec3 {
	switch {
	case g.moving[input.KeyW]:
		return g.Camera.Forward().Mul(-MoveSpeed)
	case g.moving[input.KeyA]:
		return g.Camera.Side().Mul(-MoveSpeed)
	case g.moving[input.KeyS]:
		return g.Camera.Forward().Mul(MoveSpeed)
	case g.moving[input.KeyD]:
		return g.Camera.Side().Mul(MoveSpeed)
	}
	return mgl32.Vec3{}
}

func (g *Game) move() {
	cur := g.Camera.Position()
	next := cur.Add(g.step())

	if g.World.Blocked(cur, next) {
		next = cur
	} else {
		g.collectGem(mgl32.Vec2{next.X(), next.Z()})
		if cur.Sub(g.Graph.Node(g.portal).Position()).Len() < PortalDistance && g.phase == Playing {
			g.setPhase(Won)
		}
	}

	next[1] = EyeHeight + g.Registry.Height(next.X(), next.Z())
	g.Camera.SetPosition(next)
}

// collectGem picks up the first gem within reach of p.
func (g *Game) collectGem(p mgl32.Vec2) {
	for i := range g.gems {
		gem := &g.gems[i]
		if gem.Collected || p.Sub(gem.Location).Len() >= GemDistance {
			continue
		}
		gem.Collected = true
		g.Graph.Node(gem.Node).SetPosition(hidden)
		g.logf("gem %d collected (%d/%d)", i, g.Collected(), len(g.gems))
		return
	}
}
