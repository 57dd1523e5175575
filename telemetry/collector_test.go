package telemetry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/fluid"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("WindowDurationTicks = %d, want 60", c.WindowDurationTicks())
	}
	if c.ShouldFlush(59) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(60) {
		t.Error("should flush at the window end")
	}
}

func TestCollectorFlush(t *testing.T) {
	params := fluid.DefaultParams(2)
	params.TargetDensity = 10

	p := fluid.NewParticles(2)
	p.Density[0], p.Density[1] = 8, 12
	p.NearDensity[0], p.NearDensity[1] = 1, 3
	p.Velocity[0] = mgl32.Vec3{3, 4, 0}

	c := NewCollector(1.0, 1.0/60)
	c.RecordStep(fluid.StepStats{Contacts: 3})
	c.RecordStep(fluid.StepStats{Contacts: 2})
	c.RecordReset()
	c.RecordParamEdit()
	c.RecordParamEdit()

	s := c.Flush(60, p, params)

	if s.Particles != 2 {
		t.Errorf("particles = %d, want 2", s.Particles)
	}
	if s.WallContacts != 5 || s.Resets != 1 || s.ParamEdits != 2 {
		t.Errorf("counters = %d/%d/%d, want 5/1/2", s.WallContacts, s.Resets, s.ParamEdits)
	}
	if math.Abs(s.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim_time = %v, want 1", s.SimTimeSec)
	}
	if s.DensityMean != 10 || s.NearMean != 2 {
		t.Errorf("density mean = %v near mean = %v, want 10 and 2", s.DensityMean, s.NearMean)
	}
	if math.Abs(s.DensityError-0.2) > 1e-9 {
		t.Errorf("density_error = %v, want 0.2", s.DensityError)
	}
	if s.SpeedMax != 5 {
		t.Errorf("speed_max = %v, want 5", s.SpeedMax)
	}
	if math.Abs(s.KineticEnergy-12.5) > 1e-6 {
		t.Errorf("kinetic_energy = %v, want 12.5", s.KineticEnergy)
	}

	next := c.Flush(120, p, params)
	if next.WindowStartTick != 60 {
		t.Errorf("next window start = %d, want 60", next.WindowStartTick)
	}
	if next.WallContacts != 0 || next.Resets != 0 || next.ParamEdits != 0 {
		t.Error("counters should reset after flush")
	}
}

func TestCollectorFlushWithoutParticles(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	s := c.Flush(10, nil, fluid.DefaultParams(3))
	if s.Particles != 0 || s.DensityMean != 0 {
		t.Errorf("expected empty sample, got %+v", s)
	}
}
