package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/sph/fluid"
)

// Phase names for the simulation step. The solver passes report themselves
// through fluid.PhaseTracer; sync and telemetry are timed by the simulation.
const (
	PhasePredict      = fluid.PhasePredict
	PhaseSpatialIndex = fluid.PhaseSpatialIndex
	PhaseDensity      = fluid.PhaseDensity
	PhaseForces       = fluid.PhaseForces
	PhaseIntegrate    = fluid.PhaseIntegrate
	PhaseSync         = "sync"
	PhaseTelemetry    = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{
	PhasePredict, PhaseSpatialIndex, PhaseDensity, PhaseForces,
	PhaseIntegrate, PhaseSync, PhaseTelemetry,
}

// perfSample is the timing of one tick. Phase maps are reused as the ring
// buffer wraps.
type perfSample struct {
	tick      time.Duration
	particles int
	phases    map[string]time.Duration
}

// PerfCollector keeps a ring of recent tick timings, split by phase. It
// implements fluid.PhaseTracer so the solver can mark its own passes.
type PerfCollector struct {
	ring   []perfSample
	next   int
	filled int

	cur        *perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration
}

var _ fluid.PhaseTracer = (*PerfCollector)(nil)

// NewPerfCollector creates a collector averaging over window ticks
// (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	ring := make([]perfSample, window)
	for i := range ring {
		ring[i].phases = make(map[string]time.Duration, len(Phases))
	}
	return &PerfCollector{ring: ring}
}

// StartTick begins timing a tick over the given number of particles.
func (p *PerfCollector) StartTick(particles int) {
	p.cur = &p.ring[p.next]
	clear(p.cur.phases)
	p.cur.particles = particles
	p.phase = ""
	p.tickStart = time.Now()
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" && p.cur != nil {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the last phase and commits the sample.
func (p *PerfCollector) EndTick() {
	if p.cur == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.cur.tick = now.Sub(p.tickStart)
	p.cur = nil
	p.phase = ""

	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame marks a rendered frame; FPS comes from the gap between calls.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Cost of one particle update and particle updates per second.
	NsPerParticle   float64
	ParticlesPerSec float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return out
	}

	var total time.Duration
	var particles int
	for i, s := range p.ring[:p.filled] {
		total += s.tick
		particles += s.particles
		if i == 0 || s.tick < out.MinTickDuration {
			out.MinTickDuration = s.tick
		}
		out.MaxTickDuration = max(out.MaxTickDuration, s.tick)
		for phase, d := range s.phases {
			out.PhaseAvg[phase] += d
		}
	}

	n := time.Duration(p.filled)
	out.AvgTickDuration = total / n
	for phase, sum := range out.PhaseAvg {
		avg := sum / n
		out.PhaseAvg[phase] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}

	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	if total > 0 {
		out.ParticlesPerSec = float64(particles) / total.Seconds()
	}
	if particles > 0 {
		out.NsPerParticle = float64(total.Nanoseconds()) / float64(particles)
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"ns_per_particle", int(s.NsPerParticle),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	// Add phase breakdowns
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("ns_per_particle", s.NsPerParticle),
		slog.Float64("particles_per_sec", s.ParticlesPerSec),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd       int32   `csv:"window_end"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MinTickUS       int64   `csv:"min_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	NsPerParticle   float64 `csv:"ns_per_particle"`
	FPS             float64 `csv:"fps"`
	PredictPct      float64 `csv:"predict_pct"`
	SpatialIndexPct float64 `csv:"spatial_index_pct"`
	DensityPct      float64 `csv:"density_pct"`
	ForcesPct       float64 `csv:"forces_pct"`
	IntegratePct    float64 `csv:"integrate_pct"`
	SyncPct         float64 `csv:"sync_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgTickUS:       s.AvgTickDuration.Microseconds(),
		MinTickUS:       s.MinTickDuration.Microseconds(),
		MaxTickUS:       s.MaxTickDuration.Microseconds(),
		TicksPerSec:     s.TicksPerSecond,
		NsPerParticle:   s.NsPerParticle,
		FPS:             s.FPS,
		PredictPct:      s.PhasePct[PhasePredict],
		SpatialIndexPct: s.PhasePct[PhaseSpatialIndex],
		DensityPct:      s.PhasePct[PhaseDensity],
		ForcesPct:       s.PhasePct[PhaseForces],
		IntegratePct:    s.PhasePct[PhaseIntegrate],
		SyncPct:         s.PhasePct[PhaseSync],
		TelemetryPct:    s.PhasePct[PhaseTelemetry],
	}
}
