package main

import (
	"github.com/pthm-cable/sph/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string  // column name in the evaluation log
	Path string  // config path, for reporting
	Min  float64 // lower bound
	Max  float64 // upper bound
}

// ParamVector holds the set of tuned parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the pressure and viscosity tunables.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "pressure_scalar", Path: "particle.pressure_scalar", Min: 1, Max: 100},
			{Name: "near_pressure_scalar", Path: "particle.near_pressure_scalar", Min: 0, Max: 10},
			{Name: "viscosity_strength", Path: "particle.viscosity_strength", Min: 0, Max: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp keeps every value within its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into the active particle section.
// Call cfg.Finalize afterwards to refresh derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	p := &cfg.Mode().Particle
	p.PressureScalar = clamped[0]
	p.NearPressureScalar = clamped[1]
	p.ViscosityStrength = clamped[2]
}

// ExtractFromConfig reads the current values from the active particle section.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	p := cfg.Mode().Particle
	return []float64{
		p.PressureScalar,
		p.NearPressureScalar,
		p.ViscosityStrength,
	}
}
