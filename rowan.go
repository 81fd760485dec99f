package rowan

// Vec2 is a 2D screen-space point in pixels. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float32
}

// TrackingState describes whether the tracking backend currently has a solid
// lock on a camera or trackable surface.
type TrackingState uint8

const (
	// TrackingStopped means tracking has ended and will not resume.
	TrackingStopped TrackingState = iota
	// TrackingPaused means tracking is temporarily lost (for example, the
	// camera is covered) and may resume.
	TrackingPaused
	// Tracking means the pose is valid this frame.
	Tracking
)

// GestureKind identifies which classified gesture type a Gesture carries.
// Classification itself happens outside rowan; see Gesture.
type GestureKind uint8

const (
	// GesturePinch delivers two-finger gap deltas in inches.
	GesturePinch GestureKind = iota
	// GestureDrag delivers one-finger vertical drag deltas in inches.
	GestureDrag
)

// EventType identifies a System-level notification kind. Used by
// CallbackHandle to remove a registered handler.
type EventType uint8

const (
	EventTapNode EventType = iota
	EventTapPlane
	EventTapNothing
	EventDoubleTap
	EventSelectionChanged
	EventPlaneFound
	EventPlaneUpdated
)

// TapEvent is the originating input event for a resolved tap, as delivered by
// the external gesture classifier.
type TapEvent struct {
	// X and Y are the touch point in screen pixels.
	X, Y float32
	// PointerID distinguishes fingers on multi-touch devices.
	PointerID int
}

// Point returns the touch point as a Vec2.
func (e TapEvent) Point() Vec2 {
	return Vec2{e.X, e.Y}
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp linearly interpolates from a to b by t.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
