package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a rigid transform in world units: a rotation followed by a
// translation. Scale is tracked separately on Node because trackables
// (planes, the camera) never scale.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// TransformPoint maps a point from this pose's local space to world space.
func (p Pose) TransformPoint(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Rotate(v).Add(p.Position)
}

// InverseTransformPoint maps a world-space point into this pose's local space.
func (p Pose) InverseTransformPoint(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Inverse().Rotate(v.Sub(p.Position))
}

// TransformDirection rotates a direction vector into world space. Unlike
// TransformPoint, the translation is not applied.
func (p Pose) TransformDirection(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Rotate(v)
}

// Compose returns the pose equivalent to applying child in this pose's local
// space: result = p * child.
func (p Pose) Compose(child Pose) Pose {
	return Pose{
		Position: p.TransformPoint(child.Position),
		Rotation: p.Rotation.Mul(child.Rotation),
	}
}

// Inverse returns the pose that undoes this one.
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(p.Position).Mul(-1),
		Rotation: inv,
	}
}

// Matrix converts the pose to a 4x4 column-major transform matrix.
func (p Pose) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
		Mul4(p.Rotation.Mat4())
}

// Forward returns the pose's -Z axis in world space, the conventional facing
// direction of a tracked camera.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Up returns the pose's +Y axis in world space.
func (p Pose) Up() mgl32.Vec3 {
	return p.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// PointAt returns the point at the given distance along the ray.
func (r Ray) PointAt(distance float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}
