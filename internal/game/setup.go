package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/mapgen"
	"maze-game/internal/physics"
	"maze-game/internal/resource"
	"maze-game/internal/scene"
)

// World dimensions.
const (
	TerrainSize = 110
	MazeSize    = 55
	GemCount    = 25
	TreeDepth   = 5

	fountainParticles = 8000
	leafParticles     = 500
	monsterParticles  = 300
	portalParticles   = 1000
)

type asset struct{ name, file string }

var meshes = []asset{
	{"CrowBody", "crow.obj"},
	{"WaterHole", "water.obj"},
	{"Rock1", "rock1.obj"},
	{"Rock2", "rock2.obj"},
	{"Rock3", "rock3.obj"},
	{"Pillar1", "pillar1.obj"},
	{"Pillar2", "pillar2.obj"},
	{"Pillar3", "pillar3.obj"},
	{"Stage", "stage.obj"},
	{"Fountain", "fountain.obj"},
	{"Shrine1", "shrine1.obj"},
	{"Shrine2", "shrine2.obj"},
	{"Gem", "gem.obj"},
	{"Cross", "cross.obj"},
	{"Grave", "grave.obj"},
	{"DugGrave", "duggrave.obj"},
	{"Bench", "bench.obj"},
}

// materials map to shader source prefixes.
var materials = []asset{
	{"SkyboxShader", "skybox"},
	{"TexturedShader", "textured"},
	{"MazeShader", "maze"},
	{"OverlayShader", "overlay"},
	{"FountainShader", "fountain"},
	{"ShinyShader", "shiny"},
	{"WaterShader", "water"},
	{"MonsterShader", "monster"},
	{"LeavesShader", "leaf"},
	{"ProximityShader", "monster_sse"},
	{"PortalShader", "portal"},
}

var textures = []asset{
	{"TitleTexture", "title.png"},
	{"PausedTexture", "paused.png"},
	{"WinTexture", "win.png"},
	{"LossTexture", "loss.png"},
	{"TerrainTexture", "terrain.png"},
	{"MazeTexture", "maze.png"},
	{"DropTexture", "drop.png"},
	{"GemTexture", "jewel.png"},
	{"RockTexture", "rock.png"},
	{"CrowTexture", "crow.png"},
	{"WoodTexture", "wood.png"},
	{"DirtTexture", "dirt.png"},
	{"MarbleTexture", "marble.png"},
	{"MonsterTexture", "monster.png"},
	{"PortalTexture", "star.png"},
	{"LeafTexture", "leaf.png"},
}

var skyboxFaces = [6]string{"sb0.png", "sb1.png", "sb2.png", "sb3.png", "sb4.png", "sb5.png"}

// LoadAssets generates the world and loads every mesh, material and texture the scene
// uses. seed drives the terrain; rng drives the maze and the particles.
func LoadAssets(reg *resource.Registry, seed int64, rng *rand.Rand) error {
	if err := reg.CreateTerrain("Terrain", TerrainSize, seed); err != nil {
		return err
	}
	if err := reg.CreateMaze("Maze", MazeSize, rng); err != nil {
		return err
	}
	if err := reg.LoadCubemap("SkyboxTexture", skyboxFaces); err != nil {
		return err
	}
	if err := reg.AddMesh("Skybox", mapgen.SkyboxCube()); err != nil {
		return err
	}

	particles := []struct {
		name string
		gen  func() (mapgen.PointSet, error)
	}{
		{"FountainParticles", func() (mapgen.PointSet, error) { return mapgen.FountainParticles(fountainParticles, rng) }},
		{"LeafParticles", func() (mapgen.PointSet, error) { return mapgen.LeafParticles(leafParticles, rng) }},
		{"MonsterParticles", func() (mapgen.PointSet, error) { return mapgen.MonsterParticles(monsterParticles, rng) }},
		{"Portal", func() (mapgen.PointSet, error) { return mapgen.LineParticles(portalParticles) }},
	}
	for _, p := range particles {
		set, err := p.gen()
		if err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		if err := reg.AddPoints(p.name, set); err != nil {
			return err
		}
	}

	cylinder, err := mapgen.GenerateCylinder(2, 1, 32, 32)
	if err != nil {
		return fmt.Errorf("cylinder: %w", err)
	}
	if err := reg.AddMesh("Cylinder", cylinder); err != nil {
		return err
	}

	for _, m := range meshes {
		if err := reg.Load(resource.Mesh, m.name, m.file); err != nil {
			return err
		}
	}
	for _, m := range materials {
		if err := reg.Load(resource.Material, m.name, m.file); err != nil {
			return err
		}
	}
	for _, t := range textures {
		if err := reg.Load(resource.Texture, t.name, t.file); err != nil {
			return err
		}
	}
	return nil
}

// builder creates nodes from resource names and keeps the first lookup failure.
type builder struct {
	reg   *resource.Registry
	graph *scene.Graph
	world *physics.World
	err   error
}

func (b *builder) get(name string, kinds ...resource.Kind) *resource.Resource {
	if name == "" {
		return nil
	}
	r, err := b.reg.Expect(name, kinds...)
	if err != nil && b.err == nil {
		b.err = err
	}
	return r
}

func (b *builder) spec(name, geometry, material, texture string) scene.Spec {
	return scene.Spec{
		Name:     name,
		Geometry: b.get(geometry, resource.Mesh, resource.PointSet),
		Material: b.get(material, resource.Material),
		Texture:  b.get(texture, resource.Texture, resource.Cubemap),
	}
}

func (b *builder) add(name, geometry, material, texture string) *scene.Node {
	return b.graph.Node(b.graph.Add(b.spec(name, geometry, material, texture)))
}

func (b *builder) circle(x, z, radius float32) {
	b.world.Add(physics.Circle{Center: mgl32.Vec2{x, z}, Radius: radius})
}

func (b *builder) box(x, z, halfX, halfZ float32) {
	b.world.Add(physics.Box{Center: mgl32.Vec2{x, z}, HalfSize: mgl32.Vec2{halfX, halfZ}})
}

func angleAxis(degrees float32, axis mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), axis).Normalize()
}

// BuildScene places the world's content in graph and its obstacles in world. The
// resources loaded by LoadAssets must be present in reg.
func BuildScene(reg *resource.Registry, graph *scene.Graph, world *physics.World, rng *rand.Rand) error {
	b := &builder{reg: reg, graph: graph, world: world}

	b.add("Terrain", "Terrain", "TexturedShader", "TerrainTexture")
	maze := b.spec("Maze", "Maze", "MazeShader", "MazeTexture")
	maze.Opaque = true
	graph.Add(maze)
	b.add("Skybox", "Skybox", "SkyboxShader", "SkyboxTexture")

	b.tree()
	for i := 1; i <= 3; i++ {
		b.crow(fmt.Sprintf("Crow%d", i))
	}

	b.add("Monster", "MonsterParticles", "MonsterShader", "MonsterTexture").
		SetPosition(mgl32.Vec3{110, 2, 110})
	b.add("Leaves", "LeafParticles", "LeavesShader", "LeafTexture").
		SetPosition(mgl32.Vec3{55, 13, 55})

	b.rocks(rng)
	b.graveyard()
	b.fountain()
	b.theater()
	b.stoneCircle(rng)

	for i := 0; i < GemCount; i++ {
		x, z := randomCell(rng)
		b.add(fmt.Sprintf("Gem%d", i), "Gem", "ShinyShader", "GemTexture").
			SetPosition(mgl32.Vec3{float32(x) * 2, 0.5, float32(z) * 2})
	}
	x, z := randomCell(rng)
	portal := b.add("Portal", "Portal", "PortalShader", "PortalTexture")
	portal.SetPosition(mgl32.Vec3{float32(x) * 2, 0.5, float32(z) * 2})
	portal.SetScale(mgl32.Vec3{0.75, 0.75, 0.75})

	if b.err != nil {
		return fmt.Errorf("build scene: %w", b.err)
	}
	return nil
}

// randomCell picks a room cell outside the open areas.
func randomCell(rng *rand.Rand) (int, int) {
	for {
		x, z := 1+rng.IntN(MazeSize-1), 1+rng.IntN(MazeSize-1)
		if validGemCell(x, z) {
			return x, z
		}
	}
}

func validGemCell(x, z int) bool {
	return x%2 == 1 && z%2 == 1 && !mapgen.InOpenArea(x, z, MazeSize)
}

// tree grows a trunk at the map centre with TreeDepth-1 levels of paired branches.
func (b *builder) tree() {
	h := b.reg.Height(55, 55)
	trunk := b.graph.Add(b.spec("Trunk", "Cylinder", "TexturedShader", "WoodTexture"))
	n := b.graph.Node(trunk)
	n.SetPosition(mgl32.Vec3{55, h, 55})
	n.SetScale(mgl32.Vec3{1, 4, 1})
	b.branches(trunk, TreeDepth-1)

	b.circle(55, 55, 1)
}

func (b *builder) branches(parent scene.NodeID, depth int) {
	if depth < 1 {
		return
	}
	tilt := float32(45)
	if depth%2 == 0 {
		tilt = 35
	}
	for _, j := range []float32{-1, 1} {
		ps := b.graph.Node(parent).Scale()
		s := b.spec("Branch", "Cylinder", "TexturedShader", "WoodTexture")
		s.Role = scene.SwayingBranch
		id := b.graph.AddChild(parent, s)
		n := b.graph.Node(id)
		n.SetPosition(mgl32.Vec3{-j * ps.X() * 1.5, ps.Y() * 1.25, 0})
		n.SetOrientation(angleAxis(j*tilt, mgl32.Vec3{0, 0, 1}))
		n.SetScale(ps.Mul(0.6))
		b.branches(id, depth-1)
	}
}

// crow adds a body with two flapping wings.
func (b *builder) crow(name string) {
	body := b.graph.Add(b.spec(name, "CrowBody", "TexturedShader", "CrowTexture"))
	n := b.graph.Node(body)
	n.SetOrientation(angleAxis(90, mgl32.Vec3{1, 0, 0}))
	n.SetScale(mgl32.Vec3{0.5, 0.5, 0.5})
	bodyScale := n.Scale()

	for _, w := range []struct {
		name string
		side float32
	}{
		{"LeftWing", 1},
		{"RightWing", -1},
	} {
		s := b.spec(w.name, "CrowBody", "TexturedShader", "CrowTexture")
		s.Role = scene.FlappingWing
		wing := b.graph.Node(b.graph.AddChild(body, s))
		wing.SetPosition(mgl32.Vec3{w.side * bodyScale.X() * 0.5, 0, 0})
		wing.SetOrientation(angleAxis(w.side*90, mgl32.Vec3{0, 0, 1}))
		wing.SetScale(bodyScale.Mul(0.8))
	}
}

// rocks scatters 20 rocks in a ring 7 to 22 units around the tree.
func (b *builder) rocks(rng *rand.Rand) {
	rocks := [3]string{"Rock1", "Rock2", "Rock3"}
	for i := 0; i < 20; i++ {
		a := rng.Float32() * 2 * math32.Pi
		r := 7 + float32(rng.IntN(16))
		mesh := rocks[rng.IntN(3)]

		x, z := 55+math32.Cos(a)*r, 55+math32.Sin(a)*r
		n := b.add("Rock", mesh, "TexturedShader", "RockTexture")
		n.SetPosition(mgl32.Vec3{x, b.reg.Height(x, z) - 0.1, z})
		n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
		b.circle(x, z, 1)
	}
}

// graveyard lays out 6x3 crosses and graves; one cross has fallen over a dug grave.
func (b *builder) graveyard() {
	fallen := mgl32.Vec3{0, 0, -1}.Cross(Up)
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			x := 5 + float32(i)*2
			cross := b.add("Cross", "Cross", "TexturedShader", "MarbleTexture")
			cross.SetPosition(mgl32.Vec3{x, 0, 5 + float32(j)*4})
			cross.ScaleBy(mgl32.Vec3{0.25, 0.25, 0.25})

			mesh, texture := "Grave", "TerrainTexture"
			if i == 3 && j == 1 {
				cross.Rotate(angleAxis(-90, fallen))
				mesh, texture = "DugGrave", "DirtTexture"
			} else {
				b.circle(x, 5+float32(j)*4, 0.25)
			}

			grave := b.add("Grave", mesh, "TexturedShader", texture)
			grave.SetPosition(mgl32.Vec3{x, -0.02, 6 + float32(j)*4})
			grave.ScaleBy(mgl32.Vec3{0.4, 0.4, 0.4})
		}
	}
}

// fountain rings the fountain at (98.5, 98.5) with pillars on the border of a 6x6 grid.
func (b *builder) fountain() {
	const cx, cz = 98.5, 98.5
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i != 0 && i != 5 && j != 0 && j != 5 || i == 0 && j == 0 {
				continue
			}
			mesh := "Pillar1"
			switch {
			case i-j == -1 || i-j == -4:
				mesh = "Pillar3"
			case i+j == 5:
				mesh = "Pillar2"
			}
			x, z := cx+(float32(i)-2.5)*2, cz+(float32(j)-2.5)*2
			n := b.add("Pillar", mesh, "TexturedShader", "MarbleTexture")
			n.SetPosition(mgl32.Vec3{x, 0, z})
			n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
			b.circle(x, z, 0.4)
		}
	}

	n := b.add("Fountain", "Fountain", "TexturedShader", "MarbleTexture")
	n.SetPosition(mgl32.Vec3{cx, 0, cz})
	n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
	b.circle(cx, cz, 2)

	n = b.add("FountainWater", "WaterHole", "WaterShader", "TerrainTexture")
	n.SetPosition(mgl32.Vec3{cx, 0, cz})
	n.ScaleBy(mgl32.Vec3{1.85, 1, 1.85})

	b.add("FountainParticles", "FountainParticles", "FountainShader", "DropTexture").
		SetPosition(mgl32.Vec3{cx, 0, cz})
}

// theater puts two rows of benches in front of a stage flanked by two shrines.
func (b *builder) theater() {
	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			x, z := 10+float32(i)*2, 100+(float32(j)-0.5)*4
			n := b.add("Bench", "Bench", "TexturedShader", "WoodTexture")
			n.SetPosition(mgl32.Vec3{x, 0, z})
			n.Rotate(angleAxis(90, Up))
			n.ScaleBy(mgl32.Vec3{0.3, 0.3, 0.3})
			b.box(x, z, 0.4, 1.2)
		}
	}

	for _, x := range []float32{10, 16} {
		n := b.add("Shrine", "Shrine1", "TexturedShader", "RockTexture")
		n.SetPosition(mgl32.Vec3{x, 0, 94})
		n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
		b.box(x, 94, 0.5, 0.5)
	}

	n := b.add("Stage", "Stage", "TexturedShader", "WoodTexture")
	n.SetPosition(mgl32.Vec3{5, 0, 100})
	n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
	b.box(5, 100, 2.5, 5.1)
}

// stoneCircle rings the shrine at (99.5, 8.5) with ten rocks.
func (b *builder) stoneCircle(rng *rand.Rand) {
	const cx, cz = 99.5, 8.5
	for i := 0; i < 10; i++ {
		mesh := "Rock2"
		if rng.IntN(3) == 0 {
			mesh = "Rock1"
		}
		a := float32(i) / 10 * 2 * math32.Pi
		x, z := cx+math32.Cos(a)*5, cz+math32.Sin(a)*5
		n := b.add("Rock", mesh, "TexturedShader", "RockTexture")
		n.SetPosition(mgl32.Vec3{x, -0.1, z})
		n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
		b.circle(x, z, 1)
	}

	n := b.add("Shrine", "Shrine2", "TexturedShader", "RockTexture")
	n.SetPosition(mgl32.Vec3{cx, 0, cz})
	n.ScaleBy(mgl32.Vec3{0.5, 0.5, 0.5})
	b.box(cx, cz, 1.1, 1.1)
}
