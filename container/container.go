// Package container holds the box the fluid is simulated in.
//
// A container is a centre, a full size and an orientation. Collision queries
// are answered in the container's local frame, where the box is axis-aligned
// and centred on the origin; callers transform particle state into that frame,
// resolve against the local extents and transform the result back.
package container

import (
	"github.com/go-gl/mathgl/mgl32"
)

// rotationEpsilon is how far a rotation may drift from identity and still be
// treated as axis-aligned.
const rotationEpsilon = 1e-6

// Container is an oriented box.
type Container struct {
	Position mgl32.Vec3 // centre in world space
	Size     mgl32.Vec3 // full edge lengths
	Rotation mgl32.Quat // local -> world orientation
}

// New creates an axis-aligned container centred at pos.
func New(pos, size mgl32.Vec3) Container {
	return Container{
		Position: pos,
		Size:     size,
		Rotation: mgl32.QuatIdent(),
	}
}

// HalfSize returns half the edge lengths.
func (c Container) HalfSize() mgl32.Vec3 {
	return c.Size.Mul(0.5)
}

// IsAxisAligned reports whether the container has no effective rotation.
func (c Container) IsAxisAligned() bool {
	return c.Rotation.OrientationEqualThreshold(mgl32.QuatIdent(), rotationEpsilon)
}

// LocalExtents returns the box bounds in the local frame.
func (c Container) LocalExtents() (min, max mgl32.Vec3) {
	h := c.HalfSize()
	return h.Mul(-1), h
}

// LocalExtentsPadded returns the local bounds shrunk by radius on every side.
// An axis narrower than 2*radius collapses to its centre.
func (c Container) LocalExtentsPadded(radius float32) (min, max mgl32.Vec3) {
	h := c.HalfSize()
	for i := 0; i < 3; i++ {
		e := h[i] - radius
		if e < 0 {
			e = 0
		}
		min[i] = -e
		max[i] = e
	}
	return min, max
}

// Extents returns the world-space axis-aligned bounds of the box.
// For a rotated container this is the bounding box of its eight corners.
func (c Container) Extents() (min, max mgl32.Vec3) {
	if c.IsAxisAligned() {
		h := c.HalfSize()
		return c.Position.Sub(h), c.Position.Add(h)
	}
	corners := c.Corners()
	min, max = corners[0], corners[0]
	for _, p := range corners[1:] {
		for i := 0; i < 3; i++ {
			mgl32.SetMin(&min[i], &p[i])
			mgl32.SetMax(&max[i], &p[i])
		}
	}
	return min, max
}

// ExtentsPadded returns the world-space bounds shrunk by radius.
// Only meaningful for an axis-aligned container; rotated containers must
// collide in the local frame via LocalExtentsPadded.
func (c Container) ExtentsPadded(radius float32) (min, max mgl32.Vec3) {
	lmin, lmax := c.LocalExtentsPadded(radius)
	return c.Position.Add(lmin), c.Position.Add(lmax)
}

// ToLocal maps a world-space point into the local frame.
func (c Container) ToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return c.Rotation.Conjugate().Rotate(p.Sub(c.Position))
}

// ToWorld maps a local-frame point into world space.
func (c Container) ToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return c.Rotation.Rotate(p).Add(c.Position)
}

// DirToLocal rotates a world-space direction (velocity, force) into the local frame.
func (c Container) DirToLocal(v mgl32.Vec3) mgl32.Vec3 {
	return c.Rotation.Conjugate().Rotate(v)
}

// DirToWorld rotates a local-frame direction into world space.
func (c Container) DirToWorld(v mgl32.Vec3) mgl32.Vec3 {
	return c.Rotation.Rotate(v)
}

// LocalToWorld returns the affine transform from the unit cube
// [-0.5, 0.5]^3 to the world-space box.
func (c Container) LocalToWorld() mgl32.Mat4 {
	t := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
	s := mgl32.Scale3D(c.Size.X(), c.Size.Y(), c.Size.Z())
	return t.Mul4(c.Rotation.Mat4()).Mul4(s)
}

// WorldToLocal returns the inverse of LocalToWorld.
func (c Container) WorldToLocal() mgl32.Mat4 {
	return c.LocalToWorld().Inv()
}

// Rotate applies q on top of the current orientation.
func (c *Container) Rotate(q mgl32.Quat) {
	c.Rotation = q.Mul(c.Rotation).Normalize()
}

// ResetRotation restores the axis-aligned orientation.
func (c *Container) ResetRotation() {
	c.Rotation = mgl32.QuatIdent()
}

// Corners returns the eight world-space corners.
// Corner i has bit 0 set for +X, bit 1 for +Y, bit 2 for +Z.
func (c Container) Corners() [8]mgl32.Vec3 {
	h := c.HalfSize()
	var out [8]mgl32.Vec3
	for i := range out {
		local := mgl32.Vec3{-h[0], -h[1], -h[2]}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				local[axis] = h[axis]
			}
		}
		out[i] = c.ToWorld(local)
	}
	return out
}

// Edges lists the corner index pairs that form the twelve box edges.
var Edges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // z
}

// Contains reports whether the world-space point lies inside the padded box.
func (c Container) Contains(p mgl32.Vec3, radius float32, dim int) bool {
	lp := c.ToLocal(p)
	min, max := c.LocalExtentsPadded(radius)
	for i := 0; i < dim; i++ {
		if lp[i] < min[i] || lp[i] > max[i] {
			return false
		}
	}
	return true
}
