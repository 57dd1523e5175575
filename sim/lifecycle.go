package sim

import (
	"github.com/pthm-cable/sph/components"
	"github.com/pthm-cable/sph/fluid"
)

// respawn replaces the particle buffer and its entities in one step.
func (s *Simulation) respawn() {
	s.particles = fluid.Spawn(s.spawn, s.params, s.box)

	for _, e := range s.entities {
		if s.world.Alive(e) {
			s.world.RemoveEntity(e)
		}
	}
	s.entities = s.entities[:0]

	for i := 0; i < s.particles.Len(); i++ {
		var pos components.Position
		pos.Set(s.particles.Position[i])
		vel := components.Velocity{}
		fl := components.Fluid{}
		part := components.Particle{Index: uint32(i)}
		s.entities = append(s.entities, s.mapper.NewEntity(&pos, &vel, &fl, &part))
	}
}

// syncEntities copies the particle buffer into the ECS mirror.
func (s *Simulation) syncEntities() {
	p := s.particles
	query := s.filter.Query()
	for query.Next() {
		pos, vel, fl, part := query.Get()
		i := part.Index

		pos.Set(p.Position[i])
		vel.Set(p.Velocity[i])
		fl.Density = p.Density[i]
		fl.NearDensity = p.NearDensity[i]
		fl.Pressure = p.Pressure[i]
		fl.NearPressure = p.NearPressure[i]
		part.Speed = p.Velocity[i].Len()
	}
}
