package fluid

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/container"
)

// CursorForce is a user-applied point force. Particles whose position lies
// within Radius of Position are pushed along the direction to Position with
// flat magnitude Strength: positive pulls inward, negative pushes outward.
type CursorForce struct {
	Position mgl32.Vec3
	Radius   float32
	Strength float32
}

// At returns the force the cursor applies to a particle at pos.
func (c CursorForce) At(pos mgl32.Vec3) mgl32.Vec3 {
	offset := c.Position.Sub(pos)
	sq := offset.LenSqr()
	if sq > c.Radius*c.Radius || sq == 0 {
		return mgl32.Vec3{}
	}
	return offset.Mul(c.Strength / sqrt32(sq))
}

// predictPositions sets Predicted = Position + Velocity*lookahead.
func (s *Solver) predictPositions(p *Particles, lookahead float32) {
	s.exec.For(p.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			p.Predicted[i] = p.Position[i].Add(p.Velocity[i].Mul(lookahead))
		}
	})
}

// integrate applies external forces and Accel to velocity, advances
// positions and resolves wall collisions in the container's local frame.
// It returns the number of particles that touched a wall.
func (s *Solver) integrate(p *Particles, params Params, env Environment, dt float32) int {
	var contacts atomic.Int64

	c := env.Container
	aligned := c.IsAxisAligned() || params.Dim == 2
	min, max := c.LocalExtentsPadded(params.Radius)
	scale := dt / params.Mass
	dim := params.Dim
	damping := params.CollisionDamping

	s.exec.For(p.Len(), func(start, end int) {
		var hits int64
		for i := start; i < end; i++ {
			force := env.Gravity.Add(p.Accel[i])
			if env.Cursor != nil {
				force = force.Add(env.Cursor.At(p.Position[i]))
			}
			vel := p.Velocity[i].Add(force.Mul(scale))
			pos := p.Position[i].Add(vel.Mul(dt))

			if collideLocal(c, aligned, &pos, &vel, min, max, damping, dim) {
				hits++
			}
			p.Position[i] = pos
			p.Velocity[i] = vel
		}
		contacts.Add(hits)
	})

	return int(contacts.Load())
}

// collideLocal resolves one particle against the container walls. State is
// moved into the local frame, resolved per axis and moved back.
func collideLocal(c container.Container, aligned bool, pos, vel *mgl32.Vec3, min, max mgl32.Vec3, damping float32, dim int) bool {
	var lp, lv mgl32.Vec3
	if aligned {
		lp = pos.Sub(c.Position)
		lv = *vel
	} else {
		lp = c.ToLocal(*pos)
		lv = c.DirToLocal(*vel)
	}

	if !CollideAxes(&lp, &lv, min, max, damping, dim) {
		return false
	}

	if aligned {
		*pos = lp.Add(c.Position)
		*vel = lv
	} else {
		*pos = c.ToWorld(lp)
		*vel = c.DirToWorld(lv)
	}
	return true
}

// CollideAxes clamps pos into [min, max] on each of the first dim axes,
// reflecting and damping the velocity component of any axis that was out of
// range. It reports whether any axis was clamped.
func CollideAxes(pos, vel *mgl32.Vec3, min, max mgl32.Vec3, damping float32, dim int) bool {
	hit := false
	for a := 0; a < dim; a++ {
		if pos[a] < min[a] {
			pos[a] = min[a]
			vel[a] *= -damping
			hit = true
		} else if pos[a] > max[a] {
			pos[a] = max[a]
			vel[a] *= -damping
			hit = true
		}
	}
	return hit
}
