package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
)

// --- Callback contexts ---

// TapNodeContext carries a resolved single tap on a node.
type TapNodeContext struct {
	Node     *Node
	HitPoint mgl32.Vec3
	Event    TapEvent
}

// TapPlaneContext carries a resolved single tap on a tracked plane.
type TapPlaneContext struct {
	Plane *Plane
	Hit   HitResult
	Event TapEvent
}

// TapNothingContext carries a single tap that resolved to empty space.
type TapNothingContext struct {
	// Ray goes from the camera near plane through the touch point.
	Ray Ray
	// Pose is the last examined ray-cast hit pose, when any hit was
	// examined; HasPose reports whether it is meaningful.
	Pose    Pose
	HasPose bool
	Event   TapEvent
}

// DoubleTapContext carries a double tap. Node is the selection at double-tap
// time (possibly nil) and Target the most recent single-tap resolution.
type DoubleTapContext struct {
	Node   *Node
	Target TouchTarget
	Event  TapEvent
}

// SelectionContext carries a selection change. Node is nil when the
// selection was cleared.
type SelectionContext struct {
	Node     *Node
	Previous *Node
}

// PlaneContext carries a tracked-plane notification.
type PlaneContext struct {
	Plane *Plane
}

// --- Handler registry ---

type tapNodeHandler struct {
	id uint32
	fn func(TapNodeContext)
}

type tapPlaneHandler struct {
	id uint32
	fn func(TapPlaneContext)
}

type tapNothingHandler struct {
	id uint32
	fn func(TapNothingContext)
}

type doubleTapHandler struct {
	id uint32
	fn func(DoubleTapContext)
}

type selectionHandler struct {
	id uint32
	fn func(SelectionContext)
}

type planeHandler struct {
	id uint32
	fn func(PlaneContext)
}

type handlerRegistry struct {
	tapNode      []tapNodeHandler
	tapPlane     []tapPlaneHandler
	tapNothing   []tapNothingHandler
	doubleTap    []doubleTapHandler
	selection    []selectionHandler
	planeFound   []planeHandler
	planeUpdated []planeHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered system-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventTapNode:
		h.reg.tapNode = removeTapNodeHandler(h.reg.tapNode, h.id)
	case EventTapPlane:
		h.reg.tapPlane = removeTapPlaneHandler(h.reg.tapPlane, h.id)
	case EventTapNothing:
		h.reg.tapNothing = removeTapNothingHandler(h.reg.tapNothing, h.id)
	case EventDoubleTap:
		h.reg.doubleTap = removeDoubleTapHandler(h.reg.doubleTap, h.id)
	case EventSelectionChanged:
		h.reg.selection = removeSelectionHandler(h.reg.selection, h.id)
	case EventPlaneFound:
		h.reg.planeFound = removePlaneHandler(h.reg.planeFound, h.id)
	case EventPlaneUpdated:
		h.reg.planeUpdated = removePlaneHandler(h.reg.planeUpdated, h.id)
	}
}

func removeTapNodeHandler(s []tapNodeHandler, id uint32) []tapNodeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tapNodeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeTapPlaneHandler(s []tapPlaneHandler, id uint32) []tapPlaneHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tapPlaneHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeTapNothingHandler(s []tapNothingHandler, id uint32) []tapNothingHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tapNothingHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDoubleTapHandler(s []doubleTapHandler, id uint32) []doubleTapHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = doubleTapHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSelectionHandler(s []selectionHandler, id uint32) []selectionHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = selectionHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePlaneHandler(s []planeHandler, id uint32) []planeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = planeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- System ---

// System coordinates the touch-to-transform pipeline for one tracked scene:
// it owns the node tree, resolves taps into targets, tracks which node is
// selected, routes gestures to the selected node's controllers, and ticks
// every controller once per frame.
//
// System is single-threaded: deliver all of a frame's touch events before
// calling Update for that frame.
type System struct {
	root       *Node
	picker     NodePicker
	visualizer SelectionVisualizer

	selected   *Node
	lastTarget TouchTarget
	haveTarget bool

	handlers handlerRegistry

	hintVisible bool
	planeSeen   bool

	tweens []*TweenGroup
}

// NewSystem creates a system with a pre-created root node, the built-in
// sphere picker, and the default ring selection visualizer. The
// plane-discovery hint starts visible.
func NewSystem() *System {
	s := &System{
		root:        NewNode("root"),
		hintVisible: true,
	}
	s.picker = SpherePicker{Root: s.root}
	s.visualizer = NewRingVisualizer(s)
	return s
}

// Root returns the system's root node.
func (s *System) Root() *Node {
	return s.root
}

// SetNodePicker replaces the node picker used by tap resolution. A nil
// picker disables node hits entirely (every tap falls through to planes).
func (s *System) SetNodePicker(p NodePicker) {
	s.picker = p
}

// SetSelectionVisualizer replaces the selection visualizer. The current
// selection's visual is moved to the new visualizer.
func (s *System) SetSelectionVisualizer(v SelectionVisualizer) {
	if s.selected != nil {
		if s.visualizer != nil {
			s.visualizer.RemoveSelectionVisual(s.selected)
		}
		if v != nil {
			v.ApplySelectionVisual(s.selected)
		}
	}
	s.visualizer = v
}

// Selected returns the currently selected node, or nil.
func (s *System) Selected() *Node {
	return s.selected
}

// LastTarget returns the most recent single-tap resolution. ok is false
// before the first tap.
func (s *System) LastTarget() (TouchTarget, bool) {
	return s.lastTarget, s.haveTarget
}

// DiscoveryHintVisible reports whether the "scan for a surface" guidance
// should be shown. It starts true and transitions to false the first time
// any plane is tracked; the transition is one-shot and never reverses.
func (s *System) DiscoveryHintVisible() bool {
	return s.hintVisible
}

// SelectNode makes node the selection target, deselecting any previous
// selection. Passing nil clears the selection. Returns false without
// changing anything if the current selection is mid-gesture, or if node is
// not selectable.
func (s *System) SelectNode(node *Node) bool {
	if node == s.selected {
		return true
	}
	if node != nil && (!node.Selectable || node.IsDisposed()) {
		return false
	}
	if !s.deselect() {
		return false
	}
	if node == nil {
		return true
	}

	s.selected = node
	node.selected = true
	for _, c := range node.Controllers() {
		c.activate()
	}
	if s.visualizer != nil {
		s.visualizer.ApplySelectionVisual(node)
	}
	s.fireSelectionChanged(node, nil)
	return true
}

// Deselect clears the selection. Returns false if the current selection is
// mid-gesture.
func (s *System) Deselect() bool {
	return s.SelectNode(nil)
}

// deselect clears the current selection and notifies. Refuses while a
// controller of the selected node is transforming.
func (s *System) deselect() bool {
	if s.selected == nil {
		return true
	}
	for _, c := range s.selected.Controllers() {
		if c.IsTransforming() {
			return false
		}
	}
	prev := s.selected
	s.selected = nil
	prev.selected = false
	for _, c := range prev.Controllers() {
		c.deactivate()
	}
	if s.visualizer != nil {
		s.visualizer.RemoveSelectionVisual(prev)
	}
	s.fireSelectionChanged(nil, prev)
	return true
}

// Tap resolves a single tap against the frame and dispatches the outcome:
// a node tap selects the node, while a plane or empty resolution clears the
// selection unconditionally. Returns the resolved target.
func (s *System) Tap(frame Frame, ev TapEvent) TouchTarget {
	target := ResolveTap(frame, ev, s.picker)
	s.lastTarget = target
	s.haveTarget = true

	switch target.Kind {
	case TargetNode:
		s.SelectNode(target.Node)
		s.fireTapNode(TapNodeContext{
			Node:     target.Node,
			HitPoint: target.Pose.Position,
			Event:    ev,
		})
		if target.Node.OnTap != nil {
			target.Node.OnTap(ev)
		}
	case TargetPlane:
		s.SelectNode(nil)
		s.fireTapPlane(TapPlaneContext{
			Plane: target.Plane,
			Hit:   target.Hit,
			Event: ev,
		})
	case TargetEmpty:
		s.SelectNode(nil)
		s.fireTapNothing(TapNothingContext{
			Ray:     target.Ray,
			Pose:    target.Pose,
			HasPose: target.HasPose,
			Event:   ev,
		})
	}
	return target
}

// DoubleTap dispatches a double tap. It reuses the most recent single-tap
// resolution (the selection and target captured by the preceding tap) rather
// than re-resolving hit testing at the double-tap's own coordinates.
func (s *System) DoubleTap(ev TapEvent) {
	s.fireDoubleTap(DoubleTapContext{
		Node:   s.selected,
		Target: s.lastTarget,
		Event:  ev,
	})
}

// BeginGesture starts a classified continuous gesture. Controllers of the
// selected node whose capability predicate holds attach to the returned
// gesture; a gesture that starts with no valid target stays unattached and
// its updates go nowhere. The caller feeds deltas via Gesture.Update and
// finishes with Complete or Cancel.
func (s *System) BeginGesture(kind GestureKind) *Gesture {
	g := &Gesture{Kind: kind}
	if s.selected != nil {
		for _, c := range s.selected.Controllers() {
			c.beginGesture(g)
		}
	}
	return g
}

// Animate queues a tween group to be driven from the system tick until done.
func (s *System) Animate(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// Update runs one frame tick: scans the frame's updated planes for the
// discovery one-shot, ticks every controller in the tree (controllers
// mid-gesture skip themselves), and advances queued tweens. Call after all
// of the frame's touch events have been delivered.
func (s *System) Update(frame Frame, dt float32) {
	if frame != nil {
		s.scanPlanes(frame)
	}
	s.tickControllers(s.root, dt)
	s.advanceTweens(dt)
}

// scanPlanes hides the discovery hint and fires the one-shot found
// notification the first time any plane is tracked. Every tracked update
// also fires the repeating plane-updated notification.
func (s *System) scanPlanes(frame Frame) {
	for _, plane := range frame.UpdatedPlanes() {
		if plane.State != Tracking {
			continue
		}
		if !s.planeSeen {
			s.planeSeen = true
			s.hintVisible = false
			s.firePlaneFound(PlaneContext{Plane: plane})
		}
		s.firePlaneUpdated(PlaneContext{Plane: plane})
	}
}

func (s *System) tickControllers(n *Node, dt float32) {
	for _, c := range n.Controllers() {
		c.tick(dt)
	}
	for _, child := range n.Children() {
		s.tickControllers(child, dt)
	}
}

func (s *System) advanceTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	// Clear trailing slots so finished groups are not retained.
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// --- Event registration ---

// OnTapNode registers a callback for single taps that resolve to a node.
func (s *System) OnTapNode(fn func(TapNodeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tapNode = append(s.handlers.tapNode, tapNodeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTapNode}
}

// OnTapPlane registers a callback for single taps that resolve to a tracked
// plane. Only fires when no node occupied the touch point.
func (s *System) OnTapPlane(fn func(TapPlaneContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tapPlane = append(s.handlers.tapPlane, tapPlaneHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTapPlane}
}

// OnTapNothing registers a callback for single taps that resolve to empty
// space. The context carries a screen-to-world ray for fallback placement.
func (s *System) OnTapNothing(fn func(TapNothingContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tapNothing = append(s.handlers.tapNothing, tapNothingHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTapNothing}
}

// OnDoubleTap registers a callback for double taps.
func (s *System) OnDoubleTap(fn func(DoubleTapContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.doubleTap = append(s.handlers.doubleTap, doubleTapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDoubleTap}
}

// OnSelectionChanged registers a callback for selection changes.
func (s *System) OnSelectionChanged(fn func(SelectionContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.selection = append(s.handlers.selection, selectionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventSelectionChanged}
}

// OnPlaneFound registers a callback for the first time any plane is tracked.
// Fires at most once for the lifetime of the system.
func (s *System) OnPlaneFound(fn func(PlaneContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.planeFound = append(s.handlers.planeFound, planeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPlaneFound}
}

// OnPlaneUpdated registers a callback for every tracked-plane update.
func (s *System) OnPlaneUpdated(fn func(PlaneContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.planeUpdated = append(s.handlers.planeUpdated, planeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPlaneUpdated}
}

// --- Event dispatch ---

func (s *System) fireTapNode(ctx TapNodeContext) {
	for _, h := range s.handlers.tapNode {
		h.fn(ctx)
	}
}

func (s *System) fireTapPlane(ctx TapPlaneContext) {
	for _, h := range s.handlers.tapPlane {
		h.fn(ctx)
	}
}

func (s *System) fireTapNothing(ctx TapNothingContext) {
	for _, h := range s.handlers.tapNothing {
		h.fn(ctx)
	}
}

func (s *System) fireDoubleTap(ctx DoubleTapContext) {
	for _, h := range s.handlers.doubleTap {
		h.fn(ctx)
	}
}

func (s *System) fireSelectionChanged(node, previous *Node) {
	ctx := SelectionContext{Node: node, Previous: previous}
	for _, h := range s.handlers.selection {
		h.fn(ctx)
	}
}

func (s *System) firePlaneFound(ctx PlaneContext) {
	for _, h := range s.handlers.planeFound {
		h.fn(ctx)
	}
}

func (s *System) firePlaneUpdated(ctx PlaneContext) {
	for _, h := range s.handlers.planeUpdated {
		h.fn(ctx)
	}
}
