package rowan

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TargetKind identifies which variant of a TouchTarget is active.
type TargetKind uint8

const (
	// TargetNode means a selectable node occupied the touch point.
	TargetNode TargetKind = iota
	// TargetPlane means a tracked plane was hit inside its polygon.
	TargetPlane
	// TargetEmpty means neither a node nor a valid plane hit was found.
	TargetEmpty
)

// TouchTarget is the result of resolving a single tap. Exactly one variant is
// active, indicated by Kind. Targets are produced fresh per tap and never
// persist beyond the current gesture sequence.
type TouchTarget struct {
	Kind TargetKind

	// Node is the tapped node. Valid for TargetNode.
	Node *Node
	// Plane is the tapped plane. Valid for TargetPlane.
	Plane *Plane
	// Hit is the winning ray-cast hit. Valid for TargetPlane.
	Hit HitResult

	// Pose is the hit pose: the node surface point for TargetNode, the
	// in-polygon plane pose for TargetPlane, or the last examined hit pose
	// for TargetEmpty (HasPose reports whether one exists).
	Pose    Pose
	HasPose bool

	// Ray goes from the camera near plane through the touch point.
	// Valid for TargetEmpty, for caller-defined fallback placement.
	Ray Ray
}

// NodePicker resolves a screen point to the selectable node occupying it, if
// any. The scene registry owns node geometry, so picking is a collaborator
// concern; SpherePicker is the built-in implementation.
type NodePicker interface {
	// PickNode returns the occupying node and the world-space surface point
	// that was hit, or ok=false when the point hits no node.
	PickNode(frame Frame, point Vec2) (node *Node, hitPoint mgl32.Vec3, ok bool)
}

// ResolveTap determines the single most relevant target for a screen touch:
// a node if one occupies the point, else the first ray-cast hit on a plane
// inside that plane's polygon, else empty space.
//
// A node wins outright; planes are never tested once a node is picked.
// While scanning hits, the last examined hit pose is kept as a fallback so an
// empty resolution can still carry an approximate depth. Plane hits are only
// considered while the camera is tracking.
func ResolveTap(frame Frame, ev TapEvent, picker NodePicker) TouchTarget {
	if picker != nil {
		if node, hitPoint, ok := picker.PickNode(frame, ev.Point()); ok {
			return TouchTarget{
				Kind:    TargetNode,
				Node:    node,
				Pose:    Pose{Position: hitPoint, Rotation: node.WorldPose().Rotation},
				HasPose: true,
			}
		}
	}

	cam := frame.Camera()

	if cam.State == Tracking {
		var fallback Pose
		var haveFallback bool
		for _, hit := range frame.HitTest(ev.Point()) {
			if plane, isPlane := hit.Trackable.(*Plane); isPlane && plane.PoseInPolygon(hit.Pose) {
				return TouchTarget{
					Kind:    TargetPlane,
					Plane:   plane,
					Hit:     hit,
					Pose:    hit.Pose,
					HasPose: true,
				}
			}
			// Out-of-polygon or non-plane hit: remember the pose in case
			// nothing better turns up.
			fallback = hit.Pose
			haveFallback = true
		}
		return TouchTarget{
			Kind:    TargetEmpty,
			Pose:    fallback,
			HasPose: haveFallback,
			Ray:     cam.ScreenPointToRay(ev.X, ev.Y),
		}
	}

	return TouchTarget{
		Kind: TargetEmpty,
		Ray:  cam.ScreenPointToRay(ev.X, ev.Y),
	}
}

// SpherePicker picks nodes by intersecting the touch ray with each
// selectable node's bounding sphere (PickRadius scaled by the node's local
// X scale). The nearest intersection along the ray wins.
type SpherePicker struct {
	// Root is the node tree to pick against.
	Root *Node
}

// PickNode implements NodePicker.
func (p SpherePicker) PickNode(frame Frame, point Vec2) (*Node, mgl32.Vec3, bool) {
	if p.Root == nil {
		return nil, mgl32.Vec3{}, false
	}
	ray := frame.Camera().ScreenPointToRay(point.X, point.Y)

	var best *Node
	bestDist := float32(math.Inf(1))
	var bestPoint mgl32.Vec3

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Selectable && n.PickRadius > 0 {
			radius := n.PickRadius * n.LocalScale().X()
			if t, ok := raySphere(ray, n.WorldPosition(), radius); ok && t < bestDist {
				best = n
				bestDist = t
				bestPoint = ray.PointAt(t)
			}
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(p.Root)

	if best == nil {
		return nil, mgl32.Vec3{}, false
	}
	return best, bestPoint, true
}

// raySphere returns the nearest non-negative ray parameter hitting the
// sphere, or ok=false on a miss.
func raySphere(ray Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
