package rowan

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// planeIDCounter is a plain counter (no atomic; rowan is single-threaded).
var planeIDCounter uint32

// Trackable is a real-world feature the tracking backend can report ray-cast
// hits against. Plane is the only trackable rowan inspects; other kinds pass
// through tap resolution as opaque hit poses.
type Trackable interface {
	TrackingState() TrackingState
}

// Plane is an externally-tracked real-world surface. The plane lies in the
// local X-Z of CenterPose with its normal along local +Y.
type Plane struct {
	ID uint32
	// CenterPose is the plane's pose in world space.
	CenterPose Pose
	// Polygon is the tracked boundary in plane-local X-Z coordinates.
	// Vertices must form a convex polygon in either winding order.
	Polygon []mgl32.Vec2
	// State is updated by the tracking backend.
	State TrackingState
}

// NewPlane creates a tracked plane with the given pose and boundary polygon.
func NewPlane(centerPose Pose, polygon []mgl32.Vec2) *Plane {
	planeIDCounter++
	return &Plane{
		ID:         planeIDCounter,
		CenterPose: centerPose,
		Polygon:    polygon,
		State:      Tracking,
	}
}

// TrackingState implements Trackable.
func (p *Plane) TrackingState() TrackingState {
	return p.State
}

// Normal returns the plane's normal in world space.
func (p *Plane) Normal() mgl32.Vec3 {
	return p.CenterPose.Up()
}

// PoseInPolygon reports whether the given pose's position, projected onto the
// plane, lies inside the tracked boundary polygon. Uses a cross-product sign
// test, so the boundary must be convex.
func (p *Plane) PoseInPolygon(pose Pose) bool {
	local := p.CenterPose.InverseTransformPoint(pose.Position)
	return p.polygonContains(local.X(), local.Z())
}

func (p *Plane) polygonContains(x, z float32) bool {
	n := len(p.Polygon)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Polygon[i].X()
		z1 := p.Polygon[i].Y()
		j := (i + 1) % n
		x2 := p.Polygon[j].X()
		z2 := p.Polygon[j].Y()

		cross := (x2-x1)*(z-z1) - (z2-z1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// FeaturePoint is a non-plane trackable: a single tracked depth point.
type FeaturePoint struct {
	State TrackingState
}

// TrackingState implements Trackable.
func (f FeaturePoint) TrackingState() TrackingState {
	return f.State
}

// HitResult is a single ray-cast hit reported by the tracking backend.
type HitResult struct {
	// Trackable is the feature that was hit.
	Trackable Trackable
	// Pose is the hit pose in world space. For plane hits the rotation is
	// aligned to the plane.
	Pose Pose
	// Distance is the distance from the ray origin in meters.
	Distance float32
}

// Frame is a single snapshot of the tracked scene, delivered by the tracking
// backend once per tick. Hit lists are expected nearest-first.
type Frame interface {
	// Camera returns the tracked camera for this frame.
	Camera() *Camera
	// HitTest casts a ray through the given screen point and returns all
	// trackable hits, ordered nearest-first.
	HitTest(point Vec2) []HitResult
	// UpdatedPlanes returns the planes whose tracking data changed this
	// tick, including planes tracked for the first time.
	UpdatedPlanes() []*Plane
}

// SceneFrame is a concrete Frame backed by an explicit plane set, with real
// ray-plane intersection. It serves as the reference backend for tests,
// examples, and tracking glue that already knows its plane geometry.
type SceneFrame struct {
	cam     *Camera
	planes  []*Plane
	updated []*Plane
}

// NewSceneFrame creates an empty frame for the given camera.
func NewSceneFrame(cam *Camera) *SceneFrame {
	return &SceneFrame{cam: cam}
}

// AddPlane registers a plane and marks it updated for the current tick.
func (f *SceneFrame) AddPlane(p *Plane) {
	f.planes = append(f.planes, p)
	f.updated = append(f.updated, p)
}

// BeginTick clears the per-tick updated-plane set. Call once per frame
// before feeding tracking updates.
func (f *SceneFrame) BeginTick() {
	f.updated = f.updated[:0]
}

// MarkUpdated records that a plane's tracking data changed this tick.
func (f *SceneFrame) MarkUpdated(p *Plane) {
	f.updated = append(f.updated, p)
}

// Planes returns all registered planes. The returned slice MUST NOT be
// mutated by the caller.
func (f *SceneFrame) Planes() []*Plane {
	return f.planes
}

// Camera implements Frame.
func (f *SceneFrame) Camera() *Camera {
	return f.cam
}

// UpdatedPlanes implements Frame.
func (f *SceneFrame) UpdatedPlanes() []*Plane {
	return f.updated
}

// HitTest implements Frame. Each plane is intersected as an infinite plane;
// in-polygon filtering is the resolver's job, matching how tracking backends
// report hits. Results are sorted nearest-first.
func (f *SceneFrame) HitTest(point Vec2) []HitResult {
	ray := f.cam.ScreenPointToRay(point.X, point.Y)

	var hits []HitResult
	for _, p := range f.planes {
		if p.State != Tracking {
			continue
		}
		if hit, ok := intersectPlane(ray, p, f.cam.Near); ok {
			hits = append(hits, hit)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// intersectPlane intersects a ray with a plane's infinite surface.
func intersectPlane(ray Ray, p *Plane, minDist float32) (HitResult, bool) {
	normal := p.Normal()
	denom := normal.Dot(ray.Direction)
	if denom > -1e-6 && denom < 1e-6 {
		return HitResult{}, false
	}
	t := normal.Dot(p.CenterPose.Position.Sub(ray.Origin)) / denom
	if t < minDist {
		return HitResult{}, false
	}
	return HitResult{
		Trackable: p,
		Pose: Pose{
			Position: ray.PointAt(t),
			Rotation: p.CenterPose.Rotation,
		},
		Distance: t,
	}, true
}
