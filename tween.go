package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 scalar components of a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenElevation) and call Update(dt) each frame, or hand it to
// System.Animate to be driven from the system tick. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(n *Node, vals [4]float32)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target node. If the target node has been disposed, Done is set to true and
// no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	var vals [4]float32
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(g.target, vals)
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates the node's local position
// to the given target over the specified duration using the easing function.
func TweenPosition(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.LocalPosition()
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(from.X(), to.X(), duration, fn)
	g.tweens[1] = gween.New(from.Y(), to.Y(), duration, fn)
	g.tweens[2] = gween.New(from.Z(), to.Z(), duration, fn)
	g.apply = func(n *Node, vals [4]float32) {
		n.SetLocalPosition(mgl32.Vec3{vals[0], vals[1], vals[2]})
	}
	return g
}

// TweenScale creates a TweenGroup that animates the node's uniform local
// scale to the given target value over the specified duration.
func TweenScale(node *Node, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(node.LocalScale().X(), to, duration, fn)
	g.apply = func(n *Node, vals [4]float32) {
		n.SetLocalScale(mgl32.Vec3{vals[0], vals[0], vals[0]})
	}
	return g
}

// TweenElevation creates a TweenGroup that animates the node's local Y
// position to the given target value over the specified duration.
func TweenElevation(node *Node, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(node.LocalPosition().Y(), to, duration, fn)
	g.apply = func(n *Node, vals [4]float32) {
		p := n.LocalPosition()
		n.SetLocalPosition(mgl32.Vec3{p.X(), vals[0], p.Z()})
	}
	return g
}
