// Package sim owns a running fluid simulation: the particle buffer, the
// solver, an ECS mirror of the particles and the telemetry around each tick.
// It has no rendering or input dependencies so it runs headless.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sph/components"
	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/container"
	"github.com/pthm-cable/sph/fluid"
	"github.com/pthm-cable/sph/parallel"
	"github.com/pthm-cable/sph/telemetry"
)

// Options configures a Simulation beyond what the config file holds.
type Options struct {
	Seed           int64   // overrides spawn.seed when non-zero
	LogStats       bool    // log each stats window via slog
	StatsWindowSec float64 // 0 = telemetry.stats_window
	OutputDir      string  // CSV and config snapshot directory; empty disables
	StatsCallback  func(telemetry.WindowStats)
}

// ParticleMapper creates and reads particle entities.
type ParticleMapper = ecs.Map4[components.Position, components.Velocity, components.Fluid, components.Particle]

// ParticleFilter iterates particle entities.
type ParticleFilter = ecs.Filter4[components.Position, components.Velocity, components.Fluid, components.Particle]

// Simulation holds the complete simulation state.
type Simulation struct {
	cfg *config.Config

	world    *ecs.World
	mapper   *ParticleMapper
	filter   *ParticleFilter
	entities []ecs.Entity // entity per particle slot

	exec      parallel.Executor
	solver    *fluid.Solver
	particles *fluid.Particles
	params    fluid.Params
	gravity   mgl32.Vec3
	gravityOn bool
	box       container.Container
	spawn     fluid.SpawnConfig
	cursor    *fluid.CursorForce

	tick int32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// New builds a simulation from a finalized config and spawns the initial
// particle block.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: nil config")
	}

	d := cfg.Derived
	if err := d.Params.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	exec := parallel.New(cfg.Parallel.Workers, cfg.Parallel.Threshold)
	world := ecs.NewWorld()

	s := &Simulation{
		cfg:           cfg,
		world:         world,
		mapper:        ecs.NewMap4[components.Position, components.Velocity, components.Fluid, components.Particle](world),
		filter:        ecs.NewFilter4[components.Position, components.Velocity, components.Fluid, components.Particle](world),
		exec:          exec,
		solver:        fluid.NewSolver(exec, d.Sort),
		params:        d.Params,
		gravity:       d.Gravity,
		gravityOn:     true,
		box:           d.Container,
		spawn:         d.Spawn,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if opts.Seed != 0 {
		s.spawn.Seed = opts.Seed
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	s.collector = telemetry.NewCollector(statsWindow, d.DT32)
	s.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	s.solver.Tracer = s.perfCollector

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		exec.Close()
		return nil, fmt.Errorf("sim: %w", err)
	}
	s.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	s.respawn()

	slog.Info("simulation created",
		"dim", s.params.Dim,
		"particles", s.particles.Len(),
		"layout", s.spawn.Layout.String(),
		"sort", d.Sort.String(),
		"workers", exec.Workers(),
	)
	return s, nil
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int32 { return s.tick }

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Params returns the solver parameters in effect.
func (s *Simulation) Params() fluid.Params { return s.params }

// Gravity returns the gravity applied on the next tick.
func (s *Simulation) Gravity() mgl32.Vec3 {
	if !s.gravityOn {
		return mgl32.Vec3{}
	}
	return s.gravity
}

// GravityEnabled reports whether gravity is switched on.
func (s *Simulation) GravityEnabled() bool { return s.gravityOn }

// Container returns the current container.
func (s *Simulation) Container() container.Container { return s.box }

// Layout returns the layout used by the last reset.
func (s *Simulation) Layout() fluid.Layout { return s.spawn.Layout }

// Particles returns the live particle buffer. Callers must not modify it.
func (s *Simulation) Particles() *fluid.Particles { return s.particles }

// Cursor returns the active cursor force, or nil.
func (s *Simulation) Cursor() *fluid.CursorForce { return s.cursor }

// SpatialIndex returns the index built by the last tick.
func (s *Simulation) SpatialIndex() *fluid.SpatialIndex { return s.solver.Index() }

// World returns the ECS world holding the particle entities.
func (s *Simulation) World() *ecs.World { return s.world }

// Mapper returns the particle entity mapper.
func (s *Simulation) Mapper() *ParticleMapper { return s.mapper }

// Filter returns the particle entity filter.
func (s *Simulation) Filter() *ParticleFilter { return s.filter }

// Entity returns the entity mirroring particle slot i.
func (s *Simulation) Entity(i int) (ecs.Entity, bool) {
	if i < 0 || i >= len(s.entities) {
		return ecs.Entity{}, false
	}
	return s.entities[i], true
}

// PerfStats returns the rolling per-phase timing.
func (s *Simulation) PerfStats() telemetry.PerfStats { return s.perfCollector.Stats() }

// RecordFrame marks a rendered frame for FPS tracking.
func (s *Simulation) RecordFrame() { s.perfCollector.RecordFrame() }

// Diagnostics are the scalar values shown alongside the particles.
type Diagnostics struct {
	Tick               int32
	Particles          int
	Dim                int
	PressureScalar     float32
	NearPressureScalar float32
	TargetDensity      float32
	SmoothingRadius    float32
	ViscosityStrength  float32
	Gravity            float32 // magnitude
	GravityOn          bool
	Layout             fluid.Layout
}

// Diagnostics returns the current scalar diagnostics.
func (s *Simulation) Diagnostics() Diagnostics {
	return Diagnostics{
		Tick:               s.tick,
		Particles:          s.particles.Len(),
		Dim:                s.params.Dim,
		PressureScalar:     s.params.PressureScalar,
		NearPressureScalar: s.params.NearPressureScalar,
		TargetDensity:      s.params.TargetDensity,
		SmoothingRadius:    s.params.SmoothingRadius,
		ViscosityStrength:  s.params.ViscosityStrength,
		Gravity:            s.gravity.Len(),
		GravityOn:          s.gravityOn,
		Layout:             s.spawn.Layout,
	}
}

// Close stops the worker pool and flushes output files.
func (s *Simulation) Close() error {
	s.exec.Close()
	return s.outputManager.Close()
}
