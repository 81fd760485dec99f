package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default scale bounds; tuned for tabletop-sized objects.
const (
	DefaultMinScale         = 0.75
	DefaultMaxScale         = 1.75
	DefaultScaleSensitivity = 0.75
	DefaultScaleElasticity  = 0.15
)

// DefaultScaleBounds returns the default configuration for scale controllers.
func DefaultScaleBounds() Bounds {
	return Bounds{
		Min:         DefaultMinScale,
		Max:         DefaultMaxScale,
		Sensitivity: DefaultScaleSensitivity,
		Elasticity:  DefaultScaleElasticity,
	}
}

// scaleAxis drives a node's uniform local scale from pinch gap deltas.
// The X component is the canonical read-back axis: if an external mutation
// leaves the components disagreeing, X wins and the write restores
// uniformity.
type scaleAxis struct{}

// ScaleAxis returns the uniform-scale axis for use with NewScalarController.
func ScaleAxis() ScalarAxis {
	return scaleAxis{}
}

func (scaleAxis) Kind() GestureKind {
	return GesturePinch
}

func (scaleAxis) Read(n *Node) float32 {
	return n.LocalScale().X()
}

func (scaleAxis) Write(n *Node, v float32) {
	n.SetLocalScale(mgl32.Vec3{v, v, v})
}

func (scaleAxis) InSync(n *Node, v float32) bool {
	s := n.LocalScale()
	return abs32(v-s.X()) <= valueEpsilon &&
		abs32(v-s.Y()) <= valueEpsilon &&
		abs32(v-s.Z()) <= valueEpsilon
}

// NewScaleController creates a pinch-driven uniform scale controller with
// DefaultScaleBounds and binds it to the node. Manipulates the scale with a
// tunable elastic bounce-back when pinched beyond the min/max scale.
func NewScaleController(node *Node) *ScalarController {
	return NewScalarController(node, scaleAxis{}, DefaultScaleBounds())
}
