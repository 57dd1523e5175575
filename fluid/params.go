package fluid

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownParam is returned for a parameter name that does not exist.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrInvalidParam is returned when a value violates a parameter constraint.
	ErrInvalidParam = errors.New("invalid parameter")
)

// Params are the solver tunables. They are read-only during a tick and may
// be replaced between ticks.
type Params struct {
	Dim                int     `yaml:"dim"`
	Radius             float32 `yaml:"radius"` // particle radius, used for collision padding
	Mass               float32 `yaml:"mass"`
	CollisionDamping   float32 `yaml:"collision_damping"`
	SmoothingRadius    float32 `yaml:"smoothing_radius"`
	TargetDensity      float32 `yaml:"target_density"`
	PressureScalar     float32 `yaml:"pressure_scalar"`
	NearPressureScalar float32 `yaml:"near_pressure_scalar"`
	ViscosityStrength  float32 `yaml:"viscosity_strength"`
	Timestep           float32 `yaml:"timestep"`
	Lookahead          float32 `yaml:"lookahead"` // predicted position horizon in seconds
}

// DefaultParams returns the stock tuning for a 2D or 3D simulation.
func DefaultParams(dim int) Params {
	if dim == 3 {
		return Params{
			Dim:                3,
			Radius:             0.1,
			Mass:               1,
			CollisionDamping:   0.95,
			SmoothingRadius:    0.25,
			TargetDensity:      10,
			PressureScalar:     22,
			NearPressureScalar: 2,
			ViscosityStrength:  0.1,
			Timestep:           1.0 / 60,
			Lookahead:          1.0 / 60,
		}
	}
	return Params{
		Dim:                2,
		Radius:             0.05,
		Mass:               1,
		CollisionDamping:   0.95,
		SmoothingRadius:    0.2,
		TargetDensity:      10,
		PressureScalar:     30,
		NearPressureScalar: 1,
		ViscosityStrength:  0.1,
		Timestep:           1.0 / 60,
		Lookahead:          1.0 / 60,
	}
}

// Validate reports the first constraint the parameters violate.
// Every returned error wraps ErrInvalidParam.
func (p Params) Validate() error {
	if p.Dim != 2 && p.Dim != 3 {
		return fmt.Errorf("%w: dim must be 2 or 3, got %d", ErrInvalidParam, p.Dim)
	}
	for _, name := range ParamNames() {
		v, _ := p.Get(name)
		if err := checkParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

// param describes one live-editable field.
type param struct {
	get   func(*Params) *float32
	check func(float32) bool
	rule  string
}

func positive(v float32) bool    { return v > 0 }
func nonNegative(v float32) bool { return v >= 0 }
func unit(v float32) bool        { return v >= 0 && v <= 1 }
func finite(float32) bool        { return true }

// Parameter names accepted by Set and Get.
const (
	ParamRadius             = "radius"
	ParamMass               = "mass"
	ParamCollisionDamping   = "collision_damping"
	ParamSmoothingRadius    = "smoothing_radius"
	ParamTargetDensity      = "target_density"
	ParamPressureScalar     = "pressure_scalar"
	ParamNearPressureScalar = "near_pressure_scalar"
	ParamViscosityStrength  = "viscosity_strength"
	ParamTimestep           = "timestep"
	ParamLookahead          = "lookahead"
)

var registry = map[string]param{
	ParamRadius:             {func(p *Params) *float32 { return &p.Radius }, nonNegative, ">= 0"},
	ParamMass:               {func(p *Params) *float32 { return &p.Mass }, positive, "> 0"},
	ParamCollisionDamping:   {func(p *Params) *float32 { return &p.CollisionDamping }, unit, "in [0, 1]"},
	ParamSmoothingRadius:    {func(p *Params) *float32 { return &p.SmoothingRadius }, positive, "> 0"},
	ParamTargetDensity:      {func(p *Params) *float32 { return &p.TargetDensity }, positive, "> 0"},
	ParamPressureScalar:     {func(p *Params) *float32 { return &p.PressureScalar }, finite, "finite"},
	ParamNearPressureScalar: {func(p *Params) *float32 { return &p.NearPressureScalar }, nonNegative, ">= 0"},
	ParamViscosityStrength:  {func(p *Params) *float32 { return &p.ViscosityStrength }, nonNegative, ">= 0"},
	ParamTimestep:           {func(p *Params) *float32 { return &p.Timestep }, positive, "> 0"},
	ParamLookahead:          {func(p *Params) *float32 { return &p.Lookahead }, nonNegative, ">= 0"},
}

// ParamNames lists the editable parameter names in sorted order.
func ParamNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkParam(name string, v float32) error {
	d, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) || !d.check(v) {
		return fmt.Errorf("%w: %s must be %s, got %v", ErrInvalidParam, name, d.rule, v)
	}
	return nil
}

// Get returns the named parameter.
func (p Params) Get(name string) (float32, error) {
	d, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *d.get(&p), nil
}

// Set assigns the named parameter. A rejected value leaves p unchanged.
func (p *Params) Set(name string, v float32) error {
	if err := checkParam(name, v); err != nil {
		return err
	}
	*registry[name].get(p) = v
	return nil
}

// Nudge adds delta to the named parameter and returns the resulting value.
// A step that would break the parameter's constraint is ignored.
func (p *Params) Nudge(name string, delta float32) (float32, error) {
	cur, err := p.Get(name)
	if err != nil {
		return 0, err
	}
	next := cur + delta
	if p.Set(name, next) != nil {
		return cur, nil
	}
	return next, nil
}
