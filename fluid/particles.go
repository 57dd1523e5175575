// Package fluid implements a smoothed-particle-hydrodynamics solver.
//
// A tick runs five data-parallel passes over a structure-of-arrays particle
// buffer: predict, spatial index rebuild, density, forces and integrate.
// Each pass reads only data finalised by an earlier pass and writes only
// its own particle slots, so any parallel.Executor may split the work.
package fluid

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Particles is the per-particle simulation state. 2D simulations keep the
// Z component of every vector at zero.
//
// Only Position and Velocity carry over between ticks; every other field is
// recomputed during Step.
type Particles struct {
	Position  []mgl32.Vec3
	Predicted []mgl32.Vec3
	Velocity  []mgl32.Vec3
	Accel     []mgl32.Vec3

	Density      []float32
	NearDensity  []float32
	Pressure     []float32
	NearPressure []float32
}

// NewParticles allocates a zeroed buffer of n particles.
func NewParticles(n int) *Particles {
	return &Particles{
		Position:     make([]mgl32.Vec3, n),
		Predicted:    make([]mgl32.Vec3, n),
		Velocity:     make([]mgl32.Vec3, n),
		Accel:        make([]mgl32.Vec3, n),
		Density:      make([]float32, n),
		NearDensity:  make([]float32, n),
		Pressure:     make([]float32, n),
		NearPressure: make([]float32, n),
	}
}

// Len returns the particle count.
func (p *Particles) Len() int { return len(p.Position) }

// Clone returns a deep copy.
func (p *Particles) Clone() *Particles {
	return &Particles{
		Position:     append([]mgl32.Vec3(nil), p.Position...),
		Predicted:    append([]mgl32.Vec3(nil), p.Predicted...),
		Velocity:     append([]mgl32.Vec3(nil), p.Velocity...),
		Accel:        append([]mgl32.Vec3(nil), p.Accel...),
		Density:      append([]float32(nil), p.Density...),
		NearDensity:  append([]float32(nil), p.NearDensity...),
		Pressure:     append([]float32(nil), p.Pressure...),
		NearPressure: append([]float32(nil), p.NearPressure...),
	}
}

// KineticEnergy returns sum(0.5 * mass * |v|^2).
func (p *Particles) KineticEnergy(mass float32) float64 {
	var ke float64
	for _, v := range p.Velocity {
		ke += 0.5 * float64(mass) * float64(v.LenSqr())
	}
	return ke
}

// Nearest returns the index of the particle closest to pos, or -1 when empty.
func (p *Particles) Nearest(pos mgl32.Vec3) int {
	best := -1
	var bestSq float32
	for i, q := range p.Position {
		d := q.Sub(pos).LenSqr()
		if best < 0 || d < bestSq {
			best, bestSq = i, d
		}
	}
	return best
}
