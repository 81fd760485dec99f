package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// SelectionVisualizer is applied to a node when it becomes the selection
// target and removed when the node is deselected. Implementations decide what
// the visual is; rowan only coordinates when it appears.
type SelectionVisualizer interface {
	ApplySelectionVisual(node *Node)
	RemoveSelectionVisual(node *Node)
}

// ringPopDuration is the pop-in animation length in seconds.
const ringPopDuration = 0.15

// RingVisualizer is the default SelectionVisualizer: it parents a marker
// node (conventionally rendered as a footprint ring by the drawing layer)
// under the selected node and pops it in with a short scale tween.
type RingVisualizer struct {
	sys   *System
	rings map[*Node]*Node
}

// NewRingVisualizer creates a ring visualizer whose pop-in tweens run on the
// given system's tick.
func NewRingVisualizer(sys *System) *RingVisualizer {
	return &RingVisualizer{
		sys:   sys,
		rings: make(map[*Node]*Node),
	}
}

// ApplySelectionVisual implements SelectionVisualizer.
func (v *RingVisualizer) ApplySelectionVisual(node *Node) {
	v.prune()
	if _, exists := v.rings[node]; exists {
		return
	}
	ring := NewNode("selection-ring")
	ring.SetLocalScale(mgl32.Vec3{})
	node.AddChild(ring)
	v.rings[node] = ring
	v.sys.Animate(TweenScale(ring, 1, ringPopDuration, ease.OutBack))
}

// RemoveSelectionVisual implements SelectionVisualizer.
func (v *RingVisualizer) RemoveSelectionVisual(node *Node) {
	ring, exists := v.rings[node]
	if !exists {
		return
	}
	delete(v.rings, node)
	ring.Dispose()
}

// prune drops entries whose owner node was disposed externally; the ring went
// down with the owner's subtree, so only the map entry is left to clean up.
func (v *RingVisualizer) prune() {
	for node, ring := range v.rings {
		if node.IsDisposed() {
			ring.Dispose()
			delete(v.rings, node)
		}
	}
}

// Ring returns the marker node currently attached beneath the given node, or
// nil. The drawing layer uses this to know where to render the footprint.
func (v *RingVisualizer) Ring(node *Node) *Node {
	return v.rings[node]
}
