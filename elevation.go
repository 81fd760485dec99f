package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default elevation bounds, in meters above the node's parent origin.
const (
	DefaultMinElevation         = 0.0
	DefaultMaxElevation         = 1.5
	DefaultElevationSensitivity = 0.45
	DefaultElevationElasticity  = 0.15
)

// DefaultElevationBounds returns the default configuration for elevation
// controllers.
func DefaultElevationBounds() Bounds {
	return Bounds{
		Min:         DefaultMinElevation,
		Max:         DefaultMaxElevation,
		Sensitivity: DefaultElevationSensitivity,
		Elasticity:  DefaultElevationElasticity,
	}
}

// elevationAxis drives a node's local Y position from vertical drag deltas.
// Only the Y component is written, so an elevation controller can share a
// node with a scale controller without the two racing on a property.
type elevationAxis struct{}

// ElevationAxis returns the Y-position axis for use with NewScalarController.
func ElevationAxis() ScalarAxis {
	return elevationAxis{}
}

func (elevationAxis) Kind() GestureKind {
	return GestureDrag
}

func (elevationAxis) Read(n *Node) float32 {
	return n.LocalPosition().Y()
}

func (elevationAxis) Write(n *Node, v float32) {
	p := n.LocalPosition()
	n.SetLocalPosition(mgl32.Vec3{p.X(), v, p.Z()})
}

func (elevationAxis) InSync(n *Node, v float32) bool {
	return abs32(v-n.LocalPosition().Y()) <= valueEpsilon
}

// NewElevationController creates a drag-driven lift controller with
// DefaultElevationBounds and binds it to the node.
func NewElevationController(node *Node) *ScalarController {
	return NewScalarController(node, elevationAxis{}, DefaultElevationBounds())
}
