package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"maze-game/internal/resource"
)

// Role selects the procedural motion layered on top of a node's transform.
type Role int

const (
	// Plain nodes have no extra motion.
	Plain Role = iota
	// SwayingBranch rocks about the base of the branch around the z axis.
	SwayingBranch
	// FlappingWing beats about the x axis through the root of the wing.
	FlappingWing
)

func (r Role) String() string {
	switch r {
	case SwayingBranch:
		return "swaying branch"
	case FlappingWing:
		return "flapping wing"
	}
	return "plain"
}

// NodeID addresses a node inside its Graph.
type NodeID int

// None is the parent of a root node.
const None NodeID = -1

// Spec describes a node to add. Geometry and Material may be nil for a node that only
// groups its children. A Cubemap texture marks the node as the skybox.
type Spec struct {
	Name     string
	Role     Role
	Geometry *resource.Resource
	Material *resource.Resource
	Texture  *resource.Resource
	// Opaque point sets are drawn without additive blending.
	Opaque bool
}

// Node is one entry of the scene arena.
type Node struct {
	Spec

	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3

	parent   NodeID
	children []NodeID
}

func newNode(s Spec, parent NodeID) Node {
	return Node{
		Spec:        s,
		orientation: mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		parent:      parent,
	}
}

// Position returns the translation relative to the parent.
func (n *Node) Position() mgl32.Vec3 { return n.position }

// Orientation returns the unit rotation relative to the parent.
func (n *Node) Orientation() mgl32.Quat { return n.orientation }

// Scale returns the node's own scale. Children do not inherit it.
func (n *Node) Scale() mgl32.Vec3 { return n.scale }

// Parent returns the parent id, or None for a root.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns the child ids in insertion order. The slice must not be modified.
func (n *Node) Children() []NodeID { return n.children }

// SetPosition replaces the translation.
func (n *Node) SetPosition(p mgl32.Vec3) { n.position = p }

// SetOrientation stores q normalized.
func (n *Node) SetOrientation(q mgl32.Quat) { n.orientation = q.Normalize() }

// SetScale replaces the scale.
func (n *Node) SetScale(s mgl32.Vec3) { n.scale = s }

// Translate offsets the position by d.
func (n *Node) Translate(d mgl32.Vec3) { n.position = n.position.Add(d) }

// Rotate post-multiplies the orientation by q, so q is applied in the node's own frame.
func (n *Node) Rotate(q mgl32.Quat) { n.orientation = n.orientation.Mul(q).Normalize() }

// ScaleBy multiplies the scale component-wise.
func (n *Node) ScaleBy(s mgl32.Vec3) {
	n.scale = mgl32.Vec3{n.scale[0] * s[0], n.scale[1] * s[1], n.scale[2] * s[2]}
}

// Wobble timing for each role.
const (
	swaySpeed     = 0.75
	swayAmplitude = 2
	flapSpeed     = 10
	flapAmplitude = 25
)

var (
	swayAxis = mgl32.Vec3{0, 0, 1}
	// wings beat about the axis perpendicular to the flight direction and world up
	flapAxis = mgl32.Vec3{0, 0, -1}.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
)

// wobble returns T(-pivot)·R(angle, axis)·T(pivot) for the node's role at time t, or the
// identity for plain nodes.
func (n *Node) wobble(t float32) mgl32.Mat4 {
	var (
		pivot, axis mgl32.Vec3
		angle       float32
	)
	switch n.Role {
	case SwayingBranch:
		up := n.orientation.Rotate(mgl32.Vec3{0, 1, 0})
		pivot = n.position.Sub(up.Mul(n.scale.Y() / 2))
		angle = math32.Sin(t*swaySpeed) * swayAmplitude
		axis = swayAxis
	case FlappingWing:
		pivot = n.position.Sub(mgl32.Vec3{0, n.scale.Y() / 2, 0})
		angle = math32.Sin(t*flapSpeed) * flapAmplitude
		axis = flapAxis
	default:
		return mgl32.Ident4()
	}
	neg := pivot.Mul(-1)
	return mgl32.Translate3D(neg[0], neg[1], neg[2]).
		Mul4(mgl32.HomogRotate3D(angle, axis)).
		Mul4(mgl32.Translate3D(pivot[0], pivot[1], pivot[2]))
}

// local returns T(position)·R(orientation), with S(scale) appended when withScale is set.
func (n *Node) local(withScale bool) mgl32.Mat4 {
	m := mgl32.Translate3D(n.position[0], n.position[1], n.position[2]).Mul4(n.orientation.Mat4())
	if withScale {
		m = m.Mul4(mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2]))
	}
	return m
}
