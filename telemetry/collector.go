package telemetry

import "github.com/pthm-cable/sph/fluid"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	wallContacts int
	resets       int
	paramEdits   int

	// Scratch buffers reused between flushes
	densities []float64
	near      []float64
	speeds    []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordStep adds the per-step counters reported by the solver.
func (c *Collector) RecordStep(s fluid.StepStats) {
	c.wallContacts += s.Contacts
}

// RecordReset records a particle reset.
func (c *Collector) RecordReset() {
	c.resets++
}

// RecordParamEdit records an interactive parameter change.
func (c *Collector) RecordParamEdit() {
	c.paramEdits++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples the particle state, produces a WindowStats and resets
// counters for the next window. p may be nil.
func (c *Collector) Flush(currentTick int32, p *fluid.Particles, params fluid.Params) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		WallContacts: c.wallContacts,
		Resets:       c.resets,
		ParamEdits:   c.paramEdits,

		SmoothingRadius: float64(params.SmoothingRadius),
		TargetDensity:   float64(params.TargetDensity),
		Pressure:        float64(params.PressureScalar),
		NearPressure:    float64(params.NearPressureScalar),
		Viscosity:       float64(params.ViscosityStrength),
	}

	if p != nil && p.Len() > 0 {
		n := p.Len()
		c.densities = c.densities[:0]
		c.near = c.near[:0]
		c.speeds = c.speeds[:0]
		for i := 0; i < n; i++ {
			c.densities = append(c.densities, float64(p.Density[i]))
			c.near = append(c.near, float64(p.NearDensity[i]))
			c.speeds = append(c.speeds, float64(p.Velocity[i].Len()))
		}

		stats.Particles = n
		stats.DensityError = RelativeError(c.densities, float64(params.TargetDensity))

		density := Summarize(c.densities)
		stats.DensityMean = density.Mean
		stats.DensityStd = density.Std
		stats.DensityP10 = density.P10
		stats.DensityP50 = density.P50
		stats.DensityP90 = density.P90

		stats.NearMean = Summarize(c.near).Mean

		speed := Summarize(c.speeds)
		stats.SpeedMean = speed.Mean
		stats.SpeedP90 = speed.P90
		stats.SpeedMax = speed.Max

		stats.KineticEnergy = p.KineticEnergy(params.Mass)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.wallContacts = 0
	c.resets = 0
	c.paramEdits = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
