package rowan

// gestureTarget is the controller-side hookup for an active gesture.
type gestureTarget interface {
	continueTransformation(g *Gesture)
	endTransformation(g *Gesture)
}

// Gesture is a continuous, already-classified interaction delivering
// incremental deltas until it completes or is cancelled. The external
// classifier obtains one from System.BeginGesture, pushes deltas with
// Update, and finishes with Complete or Cancel. A controller may also cancel
// the gesture itself when dragged too far past its bounds; that cancellation
// takes effect within the same Update call.
type Gesture struct {
	// Kind identifies the classified gesture type. Controllers only attach
	// to kinds they respond to.
	Kind GestureKind

	delta    float32
	targets  []gestureTarget
	finished bool
	canceled bool
}

// Delta returns the incremental delta of the current Update call, in the
// gesture's physical units (inches of pinch gap or drag travel).
func (g *Gesture) Delta() float32 {
	return g.delta
}

// Update pushes one incremental delta to every attached controller.
// No-op once the gesture has finished.
func (g *Gesture) Update(delta float32) {
	if g.finished {
		return
	}
	g.delta = delta
	for _, t := range g.targets {
		t.continueTransformation(g)
		if g.finished {
			return
		}
	}
}

// Complete finishes the gesture normally.
func (g *Gesture) Complete() {
	g.finish(false)
}

// Cancel aborts the gesture. Attached controllers are notified exactly as on
// completion; whatever value they last applied stands until idle settling
// pulls it back in range.
func (g *Gesture) Cancel() {
	g.finish(true)
}

func (g *Gesture) finish(canceled bool) {
	if g.finished {
		return
	}
	g.finished = true
	g.canceled = canceled
	for _, t := range g.targets {
		t.endTransformation(g)
	}
}

// Finished reports whether the gesture has completed or been cancelled.
func (g *Gesture) Finished() bool {
	return g.finished
}

// Canceled reports whether the gesture ended by cancellation rather than
// normal completion.
func (g *Gesture) Canceled() bool {
	return g.canceled
}

// attach binds a controller to this gesture.
func (g *Gesture) attach(t gestureTarget) {
	g.targets = append(g.targets, t)
}

// Attached reports whether any controller accepted this gesture.
func (g *Gesture) Attached() bool {
	return len(g.targets) > 0
}
