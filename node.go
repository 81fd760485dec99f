package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
)

// nodeIDCounter is a plain counter (no atomic; rowan is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a virtual object placed in the tracked scene. Nodes form a tree;
// children inherit their parent's pose. A single flat struct is used for all
// node kinds to avoid interface dispatch on the per-frame path.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local transform
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	// Selectable marks the node as a valid target for tap selection and
	// gesture transformation.
	Selectable bool

	// PickRadius is the node's world-space bounding-sphere radius used by
	// the built-in picker. Zero means the node cannot be picked.
	PickRadius float32

	// Metadata
	UserData any

	// OnTap fires when a resolved single tap lands on this node
	// (nil by default; zero cost when unused).
	OnTap func(TapEvent)

	controllers []Controller
	selected    bool
	disposed    bool
}

// NewNode creates a detached node with identity transform and unit scale.
func NewNode(name string) *Node {
	return &Node{
		ID:       nextNodeID(),
		Name:     name,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

// --- Transform accessors ---

// LocalPosition returns the node's position relative to its parent.
func (n *Node) LocalPosition() mgl32.Vec3 {
	return n.position
}

// SetLocalPosition sets the node's position relative to its parent.
func (n *Node) SetLocalPosition(p mgl32.Vec3) {
	n.position = p
}

// LocalRotation returns the node's rotation relative to its parent.
func (n *Node) LocalRotation() mgl32.Quat {
	return n.rotation
}

// SetLocalRotation sets the node's rotation relative to its parent.
func (n *Node) SetLocalRotation(q mgl32.Quat) {
	n.rotation = q
}

// LocalScale returns the node's scale relative to its parent.
func (n *Node) LocalScale() mgl32.Vec3 {
	return n.scale
}

// SetLocalScale sets the node's scale relative to its parent.
func (n *Node) SetLocalScale(s mgl32.Vec3) {
	n.scale = s
}

// LocalPose returns the node's position and rotation as a Pose.
func (n *Node) LocalPose() Pose {
	return Pose{Position: n.position, Rotation: n.rotation}
}

// SetLocalPose sets the node's position and rotation from a Pose.
func (n *Node) SetLocalPose(p Pose) {
	n.position = p.Position
	n.rotation = p.Rotation
}

// WorldPose composes the node's pose with all ancestors. Interaction trees
// are shallow, so this walks the parent chain rather than caching.
func (n *Node) WorldPose() Pose {
	pose := n.LocalPose()
	for p := n.Parent; p != nil; p = p.Parent {
		pose = p.LocalPose().Compose(pose)
	}
	return pose
}

// WorldPosition returns the node's position in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldPose().Position
}

// --- Selection ---

// Selected reports whether this node is the System's current selection.
// Selection is managed by System.SelectNode; nodes never select themselves.
func (n *Node) Selected() bool {
	return n.selected
}

// --- Controllers ---

// AddController binds a transform controller to this node. Multiple
// controllers may be bound to one node as long as each writes a disjoint
// spatial property (the shipped controllers do: scale writes LocalScale,
// elevation writes LocalPosition.Y).
func (n *Node) AddController(c Controller) {
	if c == nil {
		panic("rowan: cannot add nil controller")
	}
	n.controllers = append(n.controllers, c)
}

// Controllers returns the bound controllers. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Controllers() []Controller {
	return n.controllers
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("rowan: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("rowan: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("rowan: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Controllers bound to disposed nodes
// stop ticking.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.controllers = nil
	n.UserData = nil
	n.OnTap = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
