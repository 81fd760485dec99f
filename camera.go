package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default camera intrinsics, matching a typical phone tracking camera.
const (
	defaultVerticalFOV = 60.0 // degrees
	defaultNearClip    = 0.01 // meters
	defaultFarClip     = 30.0 // meters
)

// Camera is the tracked device camera: a world pose plus the intrinsics
// needed to convert between screen points and world rays. The tracking
// backend updates Pose and State every frame; rowan only reads them.
type Camera struct {
	// Pose is the camera's pose in world space.
	Pose Pose
	// State is the camera's tracking state this frame. Tap-to-place is
	// suppressed while the camera is not tracking.
	State TrackingState

	// VerticalFOV is the vertical field of view in degrees.
	VerticalFOV float32
	// ViewportWidth and ViewportHeight are the screen size in pixels.
	ViewportWidth  float32
	ViewportHeight float32
	// Near and Far are the clip plane distances in meters.
	Near, Far float32
}

// NewCamera creates a camera with default intrinsics for the given viewport.
func NewCamera(viewportWidth, viewportHeight float32) *Camera {
	return &Camera{
		Pose:           IdentityPose(),
		State:          Tracking,
		VerticalFOV:    defaultVerticalFOV,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Near:           defaultNearClip,
		Far:            defaultFarClip,
	}
}

// viewMatrix returns the world-to-camera transform.
func (c *Camera) viewMatrix() mgl32.Mat4 {
	return c.Pose.Inverse().Matrix()
}

// projectionMatrix returns the perspective projection for the current
// intrinsics.
func (c *Camera) projectionMatrix() mgl32.Mat4 {
	aspect := c.ViewportWidth / c.ViewportHeight
	return mgl32.Perspective(mgl32.DegToRad(c.VerticalFOV), aspect, c.Near, c.Far)
}

// ScreenPointToRay calculates a ray in world space going from the near plane
// of the camera through a point in screen space. Screen space is in device
// screen coordinates: top-left = (0, 0), bottom-right = (width, height).
func (c *Camera) ScreenPointToRay(x, y float32) Ray {
	view := c.viewMatrix()
	proj := c.projectionMatrix()
	w := int(c.ViewportWidth)
	h := int(c.ViewportHeight)

	// UnProject expects GL window coordinates (Y up from the bottom).
	winY := c.ViewportHeight - y

	near, errNear := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, w, h)
	far, errFar := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, w, h)
	if errNear != nil || errFar != nil {
		// Degenerate intrinsics; fall back to the camera's facing direction.
		return Ray{Origin: c.Pose.Position, Direction: c.Pose.Forward()}
	}
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// WorldToScreen projects a world-space point to screen pixels. The second
// return value is false when the point is behind the camera, in which case
// the returned point is not meaningful.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (Vec2, bool) {
	viewPos := c.Pose.InverseTransformPoint(p)
	if viewPos.Z() > -c.Near {
		return Vec2{}, false
	}
	win := mgl32.Project(p, c.viewMatrix(), c.projectionMatrix(),
		0, 0, int(c.ViewportWidth), int(c.ViewportHeight))
	return Vec2{win.X(), c.ViewportHeight - win.Y()}, true
}
