package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Clip planes matching raylib's default 3D projection.
const (
	orbitNear = 0.01
	orbitFar  = 1000
)

// Orbit is a perspective camera circling a target point.
type Orbit struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // radians about +Y
	Pitch    float32 // radians above the horizon
	Fovy     float32 // vertical field of view in degrees

	MinDistance, MaxDistance float32

	homeDistance float32
}

// NewOrbit creates an orbit camera looking at target from distance.
func NewOrbit(target mgl32.Vec3, distance float32) *Orbit {
	return &Orbit{
		Target:       target,
		Distance:     distance,
		Yaw:          0.6,
		Pitch:        0.35,
		Fovy:         45,
		MinDistance:  distance / 4,
		MaxDistance:  distance * 4,
		homeDistance: distance,
	}
}

// Eye returns the camera position.
func (o *Orbit) Eye() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(o.Yaw))
	sp, cp := math.Sincos(float64(o.Pitch))
	d := float64(o.Distance)
	return o.Target.Add(mgl32.Vec3{
		float32(d * cp * sy),
		float32(d * sp),
		float32(d * cp * cy),
	})
}

// Up returns the camera up vector.
func (o *Orbit) Up() mgl32.Vec3 { return mgl32.Vec3{0, 1, 0} }

// View returns the world-to-camera matrix.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, o.Up())
}

// Projection returns the perspective matrix for the given aspect ratio.
func (o *Orbit) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(o.Fovy), aspect, orbitNear, orbitFar)
}

// Turn rotates the camera around the target. Pitch stays short of the poles.
func (o *Orbit) Turn(dyaw, dpitch float32) {
	o.Yaw += dyaw
	o.Pitch = mgl32.Clamp(o.Pitch+dpitch, -1.4, 1.4)
}

// ZoomBy moves the camera toward the target by factor.
func (o *Orbit) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	o.Distance = mgl32.Clamp(o.Distance/factor, o.MinDistance, o.MaxDistance)
}

// Reset restores the initial distance and angles.
func (o *Orbit) Reset() {
	o.Distance = o.homeDistance
	o.Yaw, o.Pitch = 0.6, 0.35
}

// WorldToScreen projects p onto a w x h viewport with y down. visible is
// false for points behind the camera or past the far plane.
func (o *Orbit) WorldToScreen(p mgl32.Vec3, w, h float32) (sx, sy float32, visible bool) {
	win := mgl32.Project(p, o.View(), o.Projection(w/h), 0, 0, int(w), int(h))
	return win.X(), h - win.Y(), win.Z() > 0 && win.Z() < 1
}

// Ray returns the world-space ray through screen point (sx, sy).
func (o *Orbit) Ray(sx, sy, w, h float32) (origin, dir mgl32.Vec3, ok bool) {
	view, proj := o.View(), o.Projection(w/h)
	near, err := mgl32.UnProject(mgl32.Vec3{sx, h - sy, 0}, view, proj, 0, 0, int(w), int(h))
	if err != nil {
		return origin, dir, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{sx, h - sy, 1}, view, proj, 0, 0, int(w), int(h))
	if err != nil {
		return origin, dir, false
	}
	d := far.Sub(near)
	if d.LenSqr() == 0 {
		return origin, dir, false
	}
	return near, d.Normalize(), true
}

// PlaneHit intersects the ray through (sx, sy) with the plane through point
// with the given normal. It fails when the ray is parallel to the plane or
// the plane is behind the camera.
func (o *Orbit) PlaneHit(sx, sy, w, h float32, point, normal mgl32.Vec3) (mgl32.Vec3, bool) {
	origin, dir, ok := o.Ray(sx, sy, w, h)
	if !ok {
		return mgl32.Vec3{}, false
	}
	denom := dir.Dot(normal)
	if absf(denom) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := point.Sub(origin).Dot(normal) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
