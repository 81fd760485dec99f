package rowan

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestScreenPointToRayCenter(t *testing.T) {
	cam := NewCamera(640, 480)
	ray := cam.ScreenPointToRay(320, 240)

	assertVec3(t, "center ray direction", ray.Direction, mgl32.Vec3{0, 0, -1})
	assertNear(t, "origin on near plane", ray.Origin.Z(), -cam.Near)
}

func TestScreenPointToRayOffCenter(t *testing.T) {
	cam := NewCamera(640, 480)

	left := cam.ScreenPointToRay(0, 240)
	if left.Direction.X() >= 0 {
		t.Errorf("ray through left edge should point left, got X = %v", left.Direction.X())
	}
	top := cam.ScreenPointToRay(320, 0)
	if top.Direction.Y() <= 0 {
		t.Errorf("ray through top edge should point up, got Y = %v", top.Direction.Y())
	}
	assertNear(t, "direction normalized", top.Direction.Len(), 1)
}

func TestScreenPointToRayFollowsCameraPose(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Pose = Pose{
		Position: mgl32.Vec3{0, 3, 0},
		Rotation: mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0}),
	}

	ray := cam.ScreenPointToRay(320, 240)
	assertVec3(t, "rotated ray direction", ray.Direction, mgl32.Vec3{0, -1, 0})
}

func TestWorldToScreenCenter(t *testing.T) {
	cam := NewCamera(640, 480)

	pt, ok := cam.WorldToScreen(mgl32.Vec3{0, 0, -5})
	if !ok {
		t.Fatal("point in front of camera reported as not visible")
	}
	if math.Abs(float64(pt.X-320)) > 0.01 || math.Abs(float64(pt.Y-240)) > 0.01 {
		t.Errorf("point ahead of camera projected to (%v, %v), want (320, 240)", pt.X, pt.Y)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := NewCamera(640, 480)
	if _, ok := cam.WorldToScreen(mgl32.Vec3{0, 0, 5}); ok {
		t.Error("point behind camera reported as visible")
	}
}

// Project then cast a ray back through the pixel: the ray must pass through
// the original point.
func TestWorldToScreenRayRoundTrip(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Pose = Pose{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0}),
	}
	world := cam.Pose.TransformPoint(mgl32.Vec3{0.5, -0.3, -4})

	pt, ok := cam.WorldToScreen(world)
	if !ok {
		t.Fatal("point in front of camera reported as not visible")
	}
	ray := cam.ScreenPointToRay(pt.X, pt.Y)

	toPoint := world.Sub(ray.Origin).Normalize()
	if dot := ray.Direction.Dot(toPoint); dot < 0.9999 {
		t.Errorf("ray misses projected point, direction alignment = %v", dot)
	}
}
