package rowan

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// recordingVisualizer logs apply/remove calls.
type recordingVisualizer struct {
	applied []*Node
	removed []*Node
}

func (v *recordingVisualizer) ApplySelectionVisual(n *Node)  { v.applied = append(v.applied, n) }
func (v *recordingVisualizer) RemoveSelectionVisual(n *Node) { v.removed = append(v.removed, n) }

// addPickable places a selectable node with a scale controller under the
// system root, straight ahead of an identity camera.
func addPickable(sys *System, name string, z float32) (*Node, *ScalarController) {
	n := NewNode(name)
	n.Selectable = true
	n.PickRadius = 0.5
	n.SetLocalPosition(mgl32.Vec3{0, 0, z})
	n.SetLocalScale(mgl32.Vec3{1.25, 1.25, 1.25})
	c := NewScaleController(n)
	sys.Root().AddChild(n)
	return n, c
}

func TestSelectNodeActivatesControllers(t *testing.T) {
	sys := NewSystem()
	node, c := addPickable(sys, "chair", -3)

	if !sys.SelectNode(node) {
		t.Fatal("selectable node should be selectable")
	}
	if sys.Selected() != node || !node.Selected() {
		t.Error("selection state not set")
	}
	assertNear(t, "controller captured live value", c.CurrentRatio(), 0.5)

	// Selecting the already-selected node is a no-op success.
	if !sys.SelectNode(node) {
		t.Error("re-selecting the current node should succeed")
	}
}

func TestSelectNodeRejectsInvalidTargets(t *testing.T) {
	sys := NewSystem()

	plain := NewNode("decor")
	sys.Root().AddChild(plain)
	if sys.SelectNode(plain) {
		t.Error("unselectable node must be rejected")
	}

	gone := NewNode("gone")
	gone.Selectable = true
	gone.Dispose()
	if sys.SelectNode(gone) {
		t.Error("disposed node must be rejected")
	}
}

func TestSelectionChangedEventSequence(t *testing.T) {
	sys := NewSystem()
	a, _ := addPickable(sys, "a", -3)
	b, _ := addPickable(sys, "b", -5)

	var events []SelectionContext
	sys.OnSelectionChanged(func(ctx SelectionContext) {
		events = append(events, ctx)
	})

	sys.SelectNode(a)
	sys.SelectNode(b)
	sys.Deselect()

	want := []SelectionContext{
		{Node: a, Previous: nil},
		{Node: nil, Previous: a},
		{Node: b, Previous: nil},
		{Node: nil, Previous: b},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d selection events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestDeselectRefusedMidGesture(t *testing.T) {
	sys := NewSystem()
	node, _ := addPickable(sys, "chair", -3)
	other, _ := addPickable(sys, "table", -5)
	sys.SelectNode(node)

	g := sys.BeginGesture(GesturePinch)
	if !g.Attached() {
		t.Fatal("selected node's controller should attach")
	}

	if sys.Deselect() {
		t.Error("deselect must be refused while a gesture is in flight")
	}
	if sys.SelectNode(other) {
		t.Error("switching selection must be refused while a gesture is in flight")
	}
	if sys.Selected() != node {
		t.Error("selection changed despite refusal")
	}

	g.Complete()
	if !sys.Deselect() {
		t.Error("deselect should succeed once the gesture ended")
	}
}

func TestTapNodeSelectsAndDispatches(t *testing.T) {
	sys := NewSystem()
	node, _ := addPickable(sys, "chair", -3)
	frame := stubFrame{cam: NewCamera(640, 480)}

	var fromSystem []TapNodeContext
	sys.OnTapNode(func(ctx TapNodeContext) { fromSystem = append(fromSystem, ctx) })
	var fromNode int
	node.OnTap = func(TapEvent) { fromNode++ }

	target := sys.Tap(frame, TapEvent{X: 320, Y: 240})

	if target.Kind != TargetNode || target.Node != node {
		t.Fatalf("tap resolved to %+v, want the node", target)
	}
	if sys.Selected() != node {
		t.Error("tapping a node should select it")
	}
	if len(fromSystem) != 1 || fromSystem[0].Node != node {
		t.Error("system-level tap-node handler not dispatched")
	}
	if fromNode != 1 {
		t.Error("per-node OnTap not dispatched")
	}
}

func TestTapPlaneClearsSelection(t *testing.T) {
	sys := NewSystem()
	node, _ := addPickable(sys, "chair", 5) // behind the camera, unpickable
	sys.SelectNode(node)

	plane := NewPlane(IdentityPose(), unitSquare())
	frame := stubFrame{
		cam:  NewCamera(640, 480),
		hits: []HitResult{planeHit(plane, mgl32.Vec3{0.2, 0, 0.2}, 2)},
	}

	var planeTaps []TapPlaneContext
	sys.OnTapPlane(func(ctx TapPlaneContext) { planeTaps = append(planeTaps, ctx) })

	target := sys.Tap(frame, TapEvent{X: 320, Y: 240})

	if target.Kind != TargetPlane {
		t.Fatalf("tap resolved to kind %v, want TargetPlane", target.Kind)
	}
	if sys.Selected() != nil {
		t.Error("tapping a plane should clear the selection")
	}
	if len(planeTaps) != 1 || planeTaps[0].Plane != plane {
		t.Error("tap-plane handler not dispatched")
	}
	if last, ok := sys.LastTarget(); !ok || last.Plane != plane {
		t.Error("LastTarget should hold the plane resolution")
	}
}

func TestTapNothingDispatchesRay(t *testing.T) {
	sys := NewSystem()
	frame := stubFrame{cam: NewCamera(640, 480)}

	var misses []TapNothingContext
	sys.OnTapNothing(func(ctx TapNothingContext) { misses = append(misses, ctx) })

	sys.Tap(frame, TapEvent{X: 100, Y: 100})

	if len(misses) != 1 {
		t.Fatal("tap-nothing handler not dispatched")
	}
	if misses[0].HasPose {
		t.Error("no hits were examined, so no fallback pose should be carried")
	}
	assertNear(t, "ray direction normalized", misses[0].Ray.Direction.Len(), 1)
}

// An empty-space tap clears the selection even when the selected node has no
// controllers at all.
func TestTapNothingClearsSelection(t *testing.T) {
	sys := NewSystem()
	node := NewNode("chair")
	node.Selectable = true
	sys.Root().AddChild(node)
	sys.SelectNode(node)

	frame := stubFrame{cam: NewCamera(640, 480)}
	target := sys.Tap(frame, TapEvent{X: 100, Y: 100})

	if target.Kind != TargetEmpty {
		t.Fatalf("tap resolved to kind %v, want TargetEmpty", target.Kind)
	}
	if sys.Selected() != nil {
		t.Error("tapping empty space should clear the selection")
	}
	if node.Selected() {
		t.Error("node should no longer be marked selected")
	}
}

func TestDoubleTapReusesLastResolution(t *testing.T) {
	sys := NewSystem()
	node, _ := addPickable(sys, "chair", -3)
	frame := stubFrame{cam: NewCamera(640, 480)}

	var doubles []DoubleTapContext
	sys.OnDoubleTap(func(ctx DoubleTapContext) { doubles = append(doubles, ctx) })

	sys.Tap(frame, TapEvent{X: 320, Y: 240})
	// The second tap of the pair lands elsewhere; the context still carries
	// the first tap's resolution.
	sys.DoubleTap(TapEvent{X: 10, Y: 10})

	if len(doubles) != 1 {
		t.Fatal("double-tap handler not dispatched")
	}
	ctx := doubles[0]
	if ctx.Node != node {
		t.Error("double tap should carry the selection from the preceding tap")
	}
	if ctx.Target.Kind != TargetNode || ctx.Target.Node != node {
		t.Error("double tap should reuse the preceding tap's target")
	}
	if ctx.Event.X != 10 || ctx.Event.Y != 10 {
		t.Error("double tap should carry its own event coordinates")
	}
}

func TestPlaneDiscoveryOneShot(t *testing.T) {
	sys := NewSystem()
	if !sys.DiscoveryHintVisible() {
		t.Fatal("discovery hint should start visible")
	}

	var found, updated int
	sys.OnPlaneFound(func(PlaneContext) { found++ })
	sys.OnPlaneUpdated(func(PlaneContext) { updated++ })

	cam := downCamera(5)
	frame := NewSceneFrame(cam)

	// A paused plane does not count as discovered.
	paused := NewPlane(IdentityPose(), unitSquare())
	paused.State = TrackingPaused
	frame.AddPlane(paused)
	sys.Update(frame, 1.0/60.0)
	if found != 0 || !sys.DiscoveryHintVisible() {
		t.Fatal("non-tracking plane must not trigger discovery")
	}

	frame.BeginTick()
	frame.AddPlane(NewPlane(IdentityPose(), unitSquare()))
	sys.Update(frame, 1.0/60.0)
	if found != 1 {
		t.Errorf("plane-found fired %d times, want 1", found)
	}
	if sys.DiscoveryHintVisible() {
		t.Error("discovery hint should hide once a plane is tracked")
	}

	// Further tracked planes fire only the repeating update notification.
	frame.BeginTick()
	frame.AddPlane(NewPlane(Pose{Position: mgl32.Vec3{0, 1, 0}, Rotation: mgl32.QuatIdent()}, unitSquare()))
	sys.Update(frame, 1.0/60.0)
	if found != 1 {
		t.Errorf("plane-found fired %d times, want exactly 1", found)
	}
	if updated != 2 {
		t.Errorf("plane-updated fired %d times, want 2", updated)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	sys := NewSystem()
	addPickable(sys, "chair", -3)
	frame := stubFrame{cam: NewCamera(640, 480)}

	var first, second int
	h := sys.OnTapNode(func(TapNodeContext) { first++ })
	sys.OnTapNode(func(TapNodeContext) { second++ })

	h.Remove()
	h.Remove() // second removal is a no-op
	sys.Tap(frame, TapEvent{X: 320, Y: 240})

	if first != 0 {
		t.Error("removed handler must not fire")
	}
	if second != 1 {
		t.Error("remaining handler should still fire")
	}
}

func TestBeginGestureWithoutSelection(t *testing.T) {
	sys := NewSystem()
	addPickable(sys, "chair", -3)

	g := sys.BeginGesture(GesturePinch)
	if g.Attached() {
		t.Error("gesture with no selection should stay unattached")
	}
	g.Update(0.5) // goes nowhere
	g.Complete()
}

func TestUpdateTicksControllersForSettle(t *testing.T) {
	sys := NewSystem()
	node, c := addPickable(sys, "chair", -3)
	sys.SelectNode(node)
	c.SetCurrentRatio(1.1)

	for i := 0; i < 120; i++ {
		sys.Update(nil, 1.0/60.0)
	}
	assertNear(t, "settled scale", node.LocalScale().X(), DefaultMaxScale)
}

func TestAnimateDrivenFromUpdate(t *testing.T) {
	sys := NewSystem()
	node := NewNode("banner")
	sys.Root().AddChild(node)

	sys.Animate(TweenScale(node, 2, 0.5, ease.Linear))
	for i := 0; i < 60; i++ {
		sys.Update(nil, 1.0/60.0)
	}
	assertVec3(t, "tweened scale", node.LocalScale(), mgl32.Vec3{2, 2, 2})
	if len(sys.tweens) != 0 {
		t.Error("finished tween groups should be dropped from the queue")
	}
}

func TestRingVisualAppliedAndRemoved(t *testing.T) {
	sys := NewSystem()
	node, _ := addPickable(sys, "chair", -3)

	sys.SelectNode(node)
	ring := findChild(node, "selection-ring")
	if ring == nil {
		t.Fatal("selection should attach a ring marker node")
	}

	// The pop-in tween starts the ring at zero scale and grows it.
	assertVec3(t, "ring starts collapsed", ring.LocalScale(), mgl32.Vec3{})
	for i := 0; i < 30; i++ {
		sys.Update(nil, 1.0/60.0)
	}
	assertNear(t, "ring popped in", ring.LocalScale().X(), 1)

	sys.Deselect()
	if findChild(node, "selection-ring") != nil {
		t.Error("deselection should remove the ring")
	}
	if !ring.IsDisposed() {
		t.Error("removed ring should be disposed")
	}
}

func TestSetSelectionVisualizerMigratesCurrentVisual(t *testing.T) {
	sys := NewSystem()
	node, _ := addPickable(sys, "chair", -3)
	sys.SelectNode(node)

	rec := &recordingVisualizer{}
	sys.SetSelectionVisualizer(rec)

	if findChild(node, "selection-ring") != nil {
		t.Error("old visualizer's ring should be removed on swap")
	}
	if len(rec.applied) != 1 || rec.applied[0] != node {
		t.Error("new visualizer should receive the current selection")
	}

	sys.Deselect()
	if len(rec.removed) != 1 || rec.removed[0] != node {
		t.Error("new visualizer should handle the removal")
	}
}

func findChild(n *Node, name string) *Node {
	for _, c := range n.Children() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
