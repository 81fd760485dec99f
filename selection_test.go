package rowan

import (
	"testing"
)

// Disposing a node while it still holds a ring must not leave a dead entry in
// the visualizer: the next apply prunes it.
func TestRingVisualizerPrunesDisposedOwners(t *testing.T) {
	sys := NewSystem()
	a := NewNode("a")
	b := NewNode("b")
	sys.Root().AddChild(a)
	sys.Root().AddChild(b)

	v := NewRingVisualizer(sys)
	v.ApplySelectionVisual(a)
	ring := v.Ring(a)
	if ring == nil {
		t.Fatal("ring not attached")
	}

	// The owner goes away with its subtree, ring included.
	a.Dispose()
	if !ring.IsDisposed() {
		t.Fatal("ring should be disposed with its owner")
	}

	v.ApplySelectionVisual(b)
	if v.Ring(a) != nil {
		t.Error("disposed owner's entry should be pruned")
	}
	if v.Ring(b) == nil {
		t.Error("live owner should still get a ring")
	}
}

func TestRingVisualizerRemoveAfterOwnerDisposed(t *testing.T) {
	sys := NewSystem()
	n := NewNode("chair")
	sys.Root().AddChild(n)

	v := NewRingVisualizer(sys)
	v.ApplySelectionVisual(n)
	n.Dispose()

	v.RemoveSelectionVisual(n)
	if v.Ring(n) != nil {
		t.Error("entry should be gone after removal")
	}
}
