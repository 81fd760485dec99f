// Package rowan turns touch gestures into bounded, physically-plausible
// transformations of virtual 3D objects placed in a live camera-tracked
// scene.
//
// Rowan sits between a tracking backend (which supplies camera poses, plane
// geometry, and ray-cast hits) and a gesture classifier (which turns raw
// pointer events into taps and pinches). It resolves each tap into exactly
// one target (a node, a tracked plane, or empty space), coordinates which
// node is selected, and drives per-node transform controllers that apply
// gesture deltas with elastic resistance at the configured bounds.
//
// # Quick start
//
// Create a [System], add selectable nodes under its root, and bind
// controllers to them:
//
//	sys := rowan.NewSystem()
//
//	chair := rowan.NewNode("chair")
//	chair.Selectable = true
//	chair.PickRadius = 0.3
//	sys.Root().AddChild(chair)
//	rowan.NewScaleController(chair)
//
// Each frame, deliver classified touch events and then tick the system:
//
//	sys.Tap(frame, rowan.TapEvent{X: x, Y: y})
//	sys.Update(frame, dt)
//
// Continuous gestures stream deltas through a [Gesture]:
//
//	g := sys.BeginGesture(rowan.GesturePinch)
//	g.Update(gapDeltaInches) // per classifier update
//	g.Complete()             // or g.Cancel()
//
// # Tap resolution
//
// [ResolveTap] gives a node occupying the touch point strict priority over
// planes; otherwise the first ray-cast hit landing inside a plane's tracked
// polygon wins; otherwise the tap resolves to empty space carrying a
// screen-to-world ray for caller-defined placement. Tapping empty space
// always clears the selection.
//
// # Controllers
//
// [ScalarController] is one state machine shared by every transform type; a
// [ScalarAxis] projects the node property it drives. Shipped axes are
// uniform scale (pinch) and elevation (vertical drag). Values are tracked as
// a ratio along the configured [Bounds]; past the bounds the ratio maps
// through a diminishing elastic curve, and once the gesture ends the value
// eases back into range over the following frames.
//
// # Frames and backends
//
// The tracking backend is abstracted behind [Frame]. [SceneFrame] is a
// complete reference backend with real ray-plane intersection, useful for
// tests, tools, and examples; production glue adapts the platform's tracking
// API instead.
//
// Rowan computes what a transform should be; rendering, asset loading, and
// session management belong to the embedding application.
package rowan
