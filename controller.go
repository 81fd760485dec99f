package rowan

import (
	"math"
)

const (
	// elasticRatioLimit caps how far past [0, 1] a gesture can drag the
	// ratio before the controller force-cancels it.
	elasticRatioLimit = 0.8
	// settleLerpSpeed is the exponential-decay rate for idle settle-back.
	settleLerpSpeed = 8.0
	// valueEpsilon is the tolerance for treating two values as applied.
	valueEpsilon = 1e-4
)

// ControllerState is the transform controller's state machine position.
type ControllerState uint8

const (
	// StateIdle means the controller's node is not the selection target.
	StateIdle ControllerState = iota
	// StateActivated means the node is selected and the controller has
	// captured the current value into its ratio.
	StateActivated
	// StateTransforming means an active gesture is driving the value.
	StateTransforming
)

// Controller is a per-node transform state machine driven by the System:
// activated when its node becomes the selection target, fed gesture deltas
// while transforming, and ticked every frame otherwise for settle-back.
type Controller interface {
	// TransformableNode returns the node this controller is bound to.
	TransformableNode() *Node
	// IsTransforming reports whether an active gesture is driving the value.
	IsTransforming() bool
	// State returns the state machine position.
	State() ControllerState

	activate()
	deactivate()
	tick(dt float32)
	beginGesture(g *Gesture) bool
}

// ScalarAxis projects one scalar spatial property of a node. Implementing a
// new axis is all it takes to add a transform type; the bounded-elastic state
// machine in ScalarController is shared.
type ScalarAxis interface {
	// Kind returns the gesture type that drives this axis.
	Kind() GestureKind
	// Read returns the node's current value on this axis. Axes that write a
	// uniform multi-component property read back one canonical component.
	Read(n *Node) float32
	// Write applies a value to the node on this axis.
	Write(n *Node, v float32)
	// InSync reports whether every component this axis writes already
	// equals v within valueEpsilon. False means something outside the
	// controller mutated the node.
	InSync(n *Node, v float32) bool
}

// Bounds configures a scalar controller: the allowed value range, how
// strongly gesture deltas move the value, and how stiff the elastic
// overshoot resistance is. Min and Max are in the axis's value units;
// Max must be strictly greater than Min.
type Bounds struct {
	Min, Max    float32
	Sensitivity float32
	Elasticity  float32
}

func (b Bounds) validate() {
	if b.Max <= b.Min {
		panic("rowan: Bounds.Max must be greater than Bounds.Min")
	}
}

// span returns the width of the allowed range.
func (b Bounds) span() float32 {
	return b.Max - b.Min
}

// ScalarController converts a gesture delta stream into a bounded change of
// one scalar property, with elastic resistance past the bounds and smooth
// settle-back once the gesture ends. The value is tracked internally as an
// unclamped ratio along the [Min, Max] range; the ratio may leave [0, 1]
// while a gesture drags past the bounds.
type ScalarController struct {
	node   *Node
	axis   ScalarAxis
	bounds Bounds

	ratio        float32
	lastApplied  float32
	enabled      bool
	activated    bool
	transforming bool

	// OnFinished fires once per completed or cancelled gesture
	// (nil by default; zero cost when unused).
	OnFinished func(n *Node)
}

// NewScalarController creates a controller over the given axis, binds it to
// the node, and registers it via node.AddController.
// Panics if bounds.Max <= bounds.Min.
func NewScalarController(node *Node, axis ScalarAxis, bounds Bounds) *ScalarController {
	if node == nil {
		panic("rowan: cannot bind controller to nil node")
	}
	bounds.validate()
	c := &ScalarController{
		node:    node,
		axis:    axis,
		bounds:  bounds,
		enabled: true,
	}
	// Seed from the node's live value so an idle tick before the first
	// selection has nothing to settle.
	c.ratio = (axis.Read(node) - bounds.Min) / bounds.span()
	c.lastApplied = axis.Read(node)
	node.AddController(c)
	return c
}

// TransformableNode implements Controller.
func (c *ScalarController) TransformableNode() *Node {
	return c.node
}

// Axis returns the axis this controller writes.
func (c *ScalarController) Axis() ScalarAxis {
	return c.axis
}

// Bounds returns the current bounds configuration.
func (c *ScalarController) Bounds() Bounds {
	return c.bounds
}

// SetBounds replaces the bounds configuration. Call between gestures only;
// an active gesture keeps driving against whatever bounds it started with.
// Panics if bounds.Max <= bounds.Min.
func (c *ScalarController) SetBounds(bounds Bounds) {
	bounds.validate()
	c.bounds = bounds
}

// Enabled reports whether the controller responds to gestures and ticks.
func (c *ScalarController) Enabled() bool {
	return c.enabled
}

// SetEnabled enables or disables the controller. A disabled controller
// rejects new gestures and skips idle settling.
func (c *ScalarController) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// IsTransforming implements Controller.
func (c *ScalarController) IsTransforming() bool {
	return c.transforming
}

// State implements Controller.
func (c *ScalarController) State() ControllerState {
	switch {
	case c.transforming:
		return StateTransforming
	case c.activated && c.node.Selected():
		return StateActivated
	default:
		return StateIdle
	}
}

// CurrentRatio returns the unclamped progress along [Min, Max].
func (c *ScalarController) CurrentRatio() float32 {
	return c.ratio
}

// SetCurrentRatio re-seeds the ratio and applies the resulting value to the
// node immediately. Useful for restoring a node to a known value.
func (c *ScalarController) SetCurrentRatio(ratio float32) {
	c.ratio = ratio
	c.apply()
}

// Value returns the bounded value for the current ratio: the clamped ratio
// plus the elastic overshoot contribution, mapped into [Min, Max]. The
// result always lies strictly within one full range-width of the bounds.
func (c *ScalarController) Value() float32 {
	elasticRatio := c.clampedRatio() + c.elasticDelta()
	return c.bounds.Min + elasticRatio*c.bounds.span()
}

// activate captures the node's live value into the ratio representation.
// Called by the System exactly once when the node becomes the selection
// target.
func (c *ScalarController) activate() {
	c.activated = true
	c.ratio = (c.axis.Read(c.node) - c.bounds.Min) / c.bounds.span()
}

func (c *ScalarController) deactivate() {
	c.activated = false
}

// beginGesture attaches the controller to a starting gesture if the
// capability predicate holds: matching gesture kind, enabled, node currently
// selected, and no gesture already in flight.
func (c *ScalarController) beginGesture(g *Gesture) bool {
	if g.Kind != c.axis.Kind() {
		return false
	}
	if !c.enabled || c.transforming || c.node.IsDisposed() || !c.node.Selected() {
		return false
	}
	c.transforming = true
	g.attach(c)
	return true
}

// continueTransformation applies one gesture delta synchronously. If the
// ratio is dragged past the elastic limit the gesture is cancelled within
// this same call.
func (c *ScalarController) continueTransformation(g *Gesture) {
	c.ratio += g.Delta() * c.bounds.Sensitivity
	c.apply()

	if c.ratio < -elasticRatioLimit || c.ratio > 1.0+elasticRatioLimit {
		g.Cancel()
	}
}

// endTransformation fires on normal completion and on cancellation alike.
func (c *ScalarController) endTransformation(g *Gesture) {
	c.transforming = false
	if c.OnFinished != nil {
		c.OnFinished(c.node)
	}
}

// tick runs every frame the controller is not transforming. It eases the
// ratio toward its clamped value for settle-back motion, and reconciles
// external mutation: if something else changed the node's property since the
// last applied value, the live value becomes the new source of truth and the
// ratio is re-derived from it.
func (c *ScalarController) tick(dt float32) {
	if c.transforming || !c.enabled || c.node.IsDisposed() {
		return
	}

	t := clamp(dt*settleLerpSpeed, 0, 1)
	c.ratio = lerp(c.ratio, c.clampedRatio(), t)

	value := c.Value()
	if abs32(c.lastApplied-value) < valueEpsilon {
		if c.axis.InSync(c.node, value) {
			// Converged and untouched; nothing to write.
			return
		}
		// Externally mutated: re-derive from the node's live value.
		live := c.axis.Read(c.node)
		c.ratio = (live - c.bounds.Min) / c.bounds.span()
		c.axis.Write(c.node, live)
		c.lastApplied = live
		return
	}
	c.axis.Write(c.node, value)
	c.lastApplied = value
}

// apply writes the current bounded value to the node.
func (c *ScalarController) apply() {
	value := c.Value()
	c.axis.Write(c.node, value)
	c.lastApplied = value
}

func (c *ScalarController) clampedRatio() float32 {
	return clamp(c.ratio, 0, 1)
}

// elasticDelta maps ratio overshoot through a diminishing-returns curve
// bounded in (-1, 1), so the value asymptotically resists as the gesture
// drags further past a bound.
func (c *ScalarController) elasticDelta() float32 {
	var overRatio float32
	switch {
	case c.ratio > 1.0:
		overRatio = c.ratio - 1.0
	case c.ratio < 0.0:
		overRatio = c.ratio
	default:
		return 0.0
	}
	return (1.0 - 1.0/(abs32(overRatio)*c.bounds.Elasticity+1.0)) * sign32(overRatio)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func sign32(v float32) float32 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}
