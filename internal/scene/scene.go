// Package scene holds the game world as an arena of nodes linked by index, and draws it
// through a Surface into an off-screen Target.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/resource"
)

// Clock supplies the animation time in seconds.
type Clock interface {
	Now() float64
}

// Graph owns every node. Root nodes are drawn in insertion order, each followed by its
// subtree in pre-order.
//
// Node returns a pointer into the arena; it stays valid until the next Add or AddChild.
type Graph struct {
	Background mgl32.Vec3

	clock  Clock
	nodes  []Node
	roots  []NodeID
	byName map[string][]NodeID
}

// New returns an empty graph animated by clock.
func New(clock Clock) *Graph {
	return &Graph{
		clock:  clock,
		byName: make(map[string][]NodeID),
	}
}

// Add creates a root node.
func (g *Graph) Add(s Spec) NodeID {
	id := g.insert(s, None)
	g.roots = append(g.roots, id)
	return id
}

// AddChild creates a node under parent. The child's transform is relative to the
// parent's unscaled transform.
func (g *Graph) AddChild(parent NodeID, s Spec) NodeID {
	id := g.insert(s, parent)
	p := &g.nodes[parent]
	p.children = append(p.children, id)
	return id
}

func (g *Graph) insert(s Spec, parent NodeID) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, newNode(s, parent))
	g.byName[s.Name] = append(g.byName[s.Name], id)
	return id
}

// Node returns the node with id.
func (g *Graph) Node(id NodeID) *Node { return &g.nodes[id] }

// Len returns the number of nodes, children included.
func (g *Graph) Len() int { return len(g.nodes) }

// Roots returns the root ids in insertion order. The slice must not be modified.
func (g *Graph) Roots() []NodeID { return g.roots }

// Find returns the first node added with name.
func (g *Graph) Find(name string) (NodeID, bool) {
	ids := g.byName[name]
	if len(ids) == 0 {
		return None, false
	}
	return ids[0], true
}

// FindAll returns every node named name in insertion order.
func (g *Graph) FindAll(name string) []NodeID {
	return g.byName[name]
}

// Now returns the graph's animation time.
func (g *Graph) Now() float32 { return float32(g.clock.Now()) }

// Transform returns the world matrix of id at the current time. Scale is applied only
// when withScale is set, and never inherited from ancestors.
func (g *Graph) Transform(id NodeID, withScale bool) mgl32.Mat4 {
	return g.transform(id, withScale, g.Now())
}

func (g *Graph) transform(id NodeID, withScale bool, t float32) mgl32.Mat4 {
	n := &g.nodes[id]
	m := n.local(withScale).Mul4(n.wobble(t))
	if n.parent == None {
		return m
	}
	return g.transform(n.parent, false, t).Mul4(m)
}

// Draw submits every node to s, roots in insertion order and children depth first.
func (g *Graph) Draw(s Surface, v Viewer) {
	t := g.Now()
	for _, id := range g.roots {
		g.drawNode(s, v, id, t)
	}
}

func (g *Graph) drawNode(s Surface, v Viewer, id NodeID, t float32) {
	n := &g.nodes[id]
	if n.Geometry != nil && n.Material != nil {
		g.submit(s, v, id, t)
	}
	for _, c := range n.children {
		g.drawNode(s, v, c, t)
	}
}

func (g *Graph) submit(s Surface, v Viewer, id NodeID, t float32) {
	n := &g.nodes[id]
	s.UseMaterial(n.Material)
	s.BindGeometry(n.Geometry)
	v.Apply(s)

	world := g.transform(id, true, t)
	s.SetMatrix(WorldUniform, world)
	s.SetMatrix(NormalUniform, world.Inv().Transpose())

	skybox := n.Texture != nil && n.Texture.Kind == resource.Cubemap
	switch {
	case skybox:
		s.SetDepthFunc(true)
		s.BindTexture(0, SkyboxUniform, n.Texture)
	case n.Texture != nil:
		s.BindTexture(0, TextureUniform, n.Texture)
	}

	s.SetFloat(TimerUniform, t)
	s.SetVec3(FogColorUniform, FogColor)
	s.SetFloat(FogDensityUniform, FogDensity)
	s.SetFloat(FogFactorUniform, FogFactor)

	if n.Geometry.Kind == resource.PointSet {
		if !n.Opaque {
			s.SetBlend(true)
		}
		s.DrawPoints(n.Geometry.Size)
		s.SetBlend(false)
	} else {
		s.DrawIndexed(n.Geometry.Size)
	}

	if skybox {
		s.SetDepthFunc(false)
	}
}

// DrawToTarget renders the whole graph into target, cleared with Background.
func (g *Graph) DrawToTarget(s Surface, target Target, v Viewer) {
	target.Begin(g.Background)
	g.Draw(s, v)
	target.End()
}

// Composite draws the target's image to the screen through material. param is exposed
// to the shader as proximity; overlay, when not nil, is bound to the second unit.
func (g *Graph) Composite(s Surface, target Target, material *resource.Resource, param float32, overlay *resource.Resource) {
	s.SetDepthTest(false)
	s.UseMaterial(material)
	s.SetFloat(TimerUniform, g.Now())
	s.SetFloat(ProximityUniform, param)
	s.BindTexture(0, TextureUniform, target.Texture())
	if overlay != nil {
		s.BindTexture(1, OverlayUniform, overlay)
	}
	target.DrawQuad()
	s.SetDepthTest(true)
}
