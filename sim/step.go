package sim

import (
	"github.com/pthm-cable/sph/fluid"
	"github.com/pthm-cable/sph/telemetry"
)

// Step runs a single tick of the simulation.
func (s *Simulation) Step() fluid.StepStats {
	s.perfCollector.StartTick(s.particles.Len())

	env := fluid.Environment{
		Gravity:   s.Gravity(),
		Cursor:    s.cursor,
		Container: s.box,
	}
	stats := s.solver.Step(s.particles, s.params, env, s.params.Timestep)

	s.perfCollector.StartPhase(telemetry.PhaseSync)
	s.syncEntities()

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.collector.RecordStep(stats)
	s.tick++
	s.flushTelemetry()

	s.perfCollector.EndTick()
	return stats
}

// Run advances n ticks.
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}
