// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sph/container"
	"github.com/pthm-cable/sph/fluid"
	"github.com/pthm-cable/sph/palette"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Fluid2D    ModeConfig       `yaml:"fluid_2d"`
	Fluid3D    ModeConfig       `yaml:"fluid_3d"`
	Cursor     CursorConfig     `yaml:"cursor"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Controls   ControlsConfig   `yaml:"controls"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"` // initial 2D zoom
}

// SimulationConfig selects the active mode and solver options.
type SimulationConfig struct {
	Dim           int    `yaml:"dim"`             // 2 or 3; picks fluid_2d or fluid_3d
	Sort          string `yaml:"sort"`            // bitonic | stable
	StepsPerFrame int    `yaml:"steps_per_frame"` // fixed ticks per rendered frame
}

// Vec3 is a YAML-friendly vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec returns v as float32 components.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// ModeConfig holds everything that differs between 2D and 3D.
type ModeConfig struct {
	Particle  ParticleConfig  `yaml:"particle"`
	Gravity   Vec3            `yaml:"gravity"`
	Container ContainerConfig `yaml:"container"`
	Spawn     SpawnConfig     `yaml:"spawn"`
}

// ParticleConfig holds the solver tunables.
type ParticleConfig struct {
	Radius             float64 `yaml:"radius"`
	Mass               float64 `yaml:"mass"`
	CollisionDamping   float64 `yaml:"collision_damping"`
	SmoothingRadius    float64 `yaml:"smoothing_radius"`
	TargetDensity      float64 `yaml:"target_density"`
	PressureScalar     float64 `yaml:"pressure_scalar"`
	NearPressureScalar float64 `yaml:"near_pressure_scalar"`
	ViscosityStrength  float64 `yaml:"viscosity_strength"`
	Timestep           float64 `yaml:"timestep"`
	Lookahead          float64 `yaml:"lookahead"`
}

// ContainerConfig holds the container box.
type ContainerConfig struct {
	Position    Vec3    `yaml:"position"`
	Size        Vec3    `yaml:"size"`
	Rotation    Vec3    `yaml:"rotation"`     // initial XYZ Euler angles in degrees
	RotateSpeed float64 `yaml:"rotate_speed"` // degrees per second while a rotate key is held
}

// SpawnConfig holds initial placement settings.
type SpawnConfig struct {
	Layout  string  `yaml:"layout"` // grid | random
	Count   int     `yaml:"count"`
	Spacing float64 `yaml:"spacing"` // 0 = one particle diameter
	Seed    int64   `yaml:"seed"`
	Jitter  float64 `yaml:"jitter"`
}

// CursorConfig holds the mouse force.
type CursorConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

// ParallelConfig holds worker pool settings.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS, 1 = serial
	Threshold int `yaml:"threshold"` // minimum particles before dispatching to workers
}

// ControlsConfig holds keyboard edit steps.
type ControlsConfig struct {
	SmoothingRadiusStep float64 `yaml:"smoothing_radius_step"`
	GravityStep         float64 `yaml:"gravity_step"`
	PressureStep        float64 `yaml:"pressure_step"`
	NearPressureStep    float64 `yaml:"near_pressure_step"`
	TargetDensityStep   float64 `yaml:"target_density_step"`
}

// RenderConfig holds drawing settings.
type RenderConfig struct {
	MaxColorSpeed float64 `yaml:"max_color_speed"` // speed mapped to the hot end of the gradient
	Gradient      string  `yaml:"gradient"`        // hue | turbo | viridis | plasma
	ShowPanel     bool    `yaml:"show_panel"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32      // active timestep as float32
	ScreenW32 float32      // Screen.Width as float32
	ScreenH32 float32      // Screen.Height as float32
	Params    fluid.Params // active solver parameters
	Gravity   mgl32.Vec3   // active gravity
	Container container.Container
	Spawn     fluid.SpawnConfig
	Sort      fluid.SortStrategy
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Finalize recomputes derived values and validates them. Call it again after
// changing fields in code (for example from command-line overrides).
func (c *Config) Finalize() error {
	if err := c.computeDerived(); err != nil {
		return err
	}
	return c.Validate()
}

// Mode returns the section for the active dimension.
func (c *Config) Mode() *ModeConfig {
	if c.Simulation.Dim == 3 {
		return &c.Fluid3D
	}
	return &c.Fluid2D
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	m := c.Mode()

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Params = m.Particle.params(c.Simulation.Dim)
	c.Derived.DT32 = c.Derived.Params.Timestep
	c.Derived.Gravity = m.Gravity.Vec()

	box := container.New(m.Container.Position.Vec(), m.Container.Size.Vec())
	if c.Simulation.Dim == 3 {
		r := m.Container.Rotation
		box.Rotation = mgl32.AnglesToQuat(
			mgl32.DegToRad(float32(r.X)),
			mgl32.DegToRad(float32(r.Y)),
			mgl32.DegToRad(float32(r.Z)),
			mgl32.XYZ,
		)
	}
	c.Derived.Container = box

	layout, err := fluid.ParseLayout(m.Spawn.Layout)
	if err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	c.Derived.Spawn = fluid.SpawnConfig{
		Layout:  layout,
		Count:   m.Spawn.Count,
		Spacing: float32(m.Spawn.Spacing),
		Seed:    m.Spawn.Seed,
		Jitter:  float32(m.Spawn.Jitter),
	}

	sort, err := fluid.ParseSortStrategy(c.Simulation.Sort)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	c.Derived.Sort = sort

	if c.Simulation.StepsPerFrame < 1 {
		c.Simulation.StepsPerFrame = 1
	}
	return nil
}

func (p ParticleConfig) params(dim int) fluid.Params {
	return fluid.Params{
		Dim:                dim,
		Radius:             float32(p.Radius),
		Mass:               float32(p.Mass),
		CollisionDamping:   float32(p.CollisionDamping),
		SmoothingRadius:    float32(p.SmoothingRadius),
		TargetDensity:      float32(p.TargetDensity),
		PressureScalar:     float32(p.PressureScalar),
		NearPressureScalar: float32(p.NearPressureScalar),
		ViscosityStrength:  float32(p.ViscosityStrength),
		Timestep:           float32(p.Timestep),
		Lookahead:          float32(p.Lookahead),
	}
}

// SetParams writes solver parameters back into the active section, so a
// tuned set can be saved with WriteYAML.
func (c *Config) SetParams(p fluid.Params) {
	c.Mode().Particle = ParticleConfig{
		Radius:             float64(p.Radius),
		Mass:               float64(p.Mass),
		CollisionDamping:   float64(p.CollisionDamping),
		SmoothingRadius:    float64(p.SmoothingRadius),
		TargetDensity:      float64(p.TargetDensity),
		PressureScalar:     float64(p.PressureScalar),
		NearPressureScalar: float64(p.NearPressureScalar),
		ViscosityStrength:  float64(p.ViscosityStrength),
		Timestep:           float64(p.Timestep),
		Lookahead:          float64(p.Lookahead),
	}
	c.Derived.Params = p
	c.Derived.DT32 = p.Timestep
}

// Validate rejects configurations the solver cannot run. It expects derived
// values to be current.
func (c *Config) Validate() error {
	if c.Simulation.Dim != 2 && c.Simulation.Dim != 3 {
		return fmt.Errorf("simulation.dim must be 2 or 3, got %d", c.Simulation.Dim)
	}
	section := "fluid_" + strconv.Itoa(c.Simulation.Dim) + "d"

	p := c.Derived.Params
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s.particle: %w", section, err)
	}

	for _, g := range c.Derived.Gravity {
		if math.IsNaN(float64(g)) || math.IsInf(float64(g), 0) {
			return fmt.Errorf("%s.gravity %v must be finite: %w", section, c.Derived.Gravity, fluid.ErrInvalidParam)
		}
	}

	size := c.Derived.Container.Size
	for a := 0; a < c.Simulation.Dim; a++ {
		if size[a] < 2*p.Radius {
			return fmt.Errorf("%s.container: size %v smaller than a particle diameter: %w", section, size, fluid.ErrInvalidParam)
		}
	}

	if c.Derived.Spawn.Count < 0 {
		return fmt.Errorf("%s.spawn: count must be >= 0: %w", section, fluid.ErrInvalidParam)
	}
	if c.Cursor.Radius < 0 {
		return fmt.Errorf("cursor.radius must be >= 0: %w", fluid.ErrInvalidParam)
	}
	if c.Parallel.Workers < 0 {
		return fmt.Errorf("parallel.workers must be >= 0: %w", fluid.ErrInvalidParam)
	}
	if !palette.Valid(c.Render.Gradient) {
		return fmt.Errorf("render.gradient %q must be one of %v: %w", c.Render.Gradient, palette.Names, fluid.ErrInvalidParam)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be > 0: %w", fluid.ErrInvalidParam)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
