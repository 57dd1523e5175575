package fluid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// fallbackDir is used when two particles coincide.
var fallbackDir = mgl32.Vec3{0, 1, 0}

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }

// computeForces fills Accel from pressure, near-pressure and viscosity.
// Self pairs are skipped.
func (s *Solver) computeForces(p *Particles, params Params) {
	k := s.kernels
	mass := params.Mass
	h := params.SmoothingRadius
	hSq := h * h
	index := s.index

	s.exec.For(p.Len(), func(start, end int) {
		var keys [27]uint32
		for i := start; i < end; i++ {
			pos := p.Predicted[i]
			vel := p.Velocity[i]
			pressure := p.Pressure[i]
			nearPressure := p.NearPressure[i]

			var pressureForce, viscosityForce mgl32.Vec3

			for _, key := range index.NeighborKeys(pos, &keys) {
				for _, e := range index.Bucket(key) {
					j := e.Index
					if int(j) == i {
						continue
					}
					offset := p.Predicted[j].Sub(pos)
					sq := offset.LenSqr()
					if sq > hSq {
						continue
					}
					dist := sqrt32(sq)
					dir := fallbackDir
					if dist > 0 {
						dir = offset.Mul(1 / dist)
					}

					sharedPressure := (pressure + p.Pressure[j]) * 0.5
					sharedNear := (nearPressure + p.NearPressure[j]) * 0.5

					pressureForce = pressureForce.Add(dir.Mul(sharedPressure * k.DensityDerivative(dist) * mass / p.Density[j]))
					pressureForce = pressureForce.Add(dir.Mul(sharedNear * k.NearDerivative(dist) * mass / p.NearDensity[j]))

					viscosityForce = viscosityForce.Add(p.Velocity[j].Sub(vel).Mul(k.Viscosity(dist)))
				}
			}

			p.Accel[i] = pressureForce.Mul(1 / p.Density[i]).Add(viscosityForce.Mul(params.ViscosityStrength))
		}
	})
}
