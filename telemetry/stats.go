package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Particles int `csv:"particles"`

	// Events during window
	WallContacts int `csv:"wall_contacts"`
	Resets       int `csv:"resets"`
	ParamEdits   int `csv:"param_edits"`

	// Density distribution (sampled at window end)
	DensityMean  float64 `csv:"density_mean"`
	DensityStd   float64 `csv:"density_std"`
	DensityP10   float64 `csv:"density_p10"`
	DensityP50   float64 `csv:"density_p50"`
	DensityP90   float64 `csv:"density_p90"`
	DensityError float64 `csv:"density_error"` // mean |rho - rho0| / rho0
	NearMean     float64 `csv:"near_density_mean"`

	// Motion
	SpeedMean     float64 `csv:"speed_mean"`
	SpeedP90      float64 `csv:"speed_p90"`
	SpeedMax      float64 `csv:"speed_max"`
	KineticEnergy float64 `csv:"kinetic_energy"`

	// Parameters in effect at window end
	SmoothingRadius float64 `csv:"smoothing_radius"`
	TargetDensity   float64 `csv:"target_density"`
	Pressure        float64 `csv:"pressure_scalar"`
	NearPressure    float64 `csv:"near_pressure_scalar"`
	Viscosity       float64 `csv:"viscosity_strength"`
}

// Summary is the distribution of one sampled quantity.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes mean, sample standard deviation, empirical percentiles
// and maximum. values is sorted in place. An empty slice yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	slices.Sort(values)

	var s Summary
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		s.Std = 0
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	s.Max = floats.Max(values)
	return s
}

// RelativeError returns mean |v - target| / target. Zero when target is not
// positive or values is empty.
func RelativeError(values []float64, target float64) float64 {
	if target <= 0 || len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - target
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / (target * float64(len(values)))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("wall_contacts", s.WallContacts),
		slog.Int("resets", s.Resets),
		slog.Int("param_edits", s.ParamEdits),
		slog.Float64("density_mean", s.DensityMean),
		slog.Float64("density_std", s.DensityStd),
		slog.Float64("density_p10", s.DensityP10),
		slog.Float64("density_p50", s.DensityP50),
		slog.Float64("density_p90", s.DensityP90),
		slog.Float64("density_error", s.DensityError),
		slog.Float64("near_density_mean", s.NearMean),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("smoothing_radius", s.SmoothingRadius),
		slog.Float64("target_density", s.TargetDensity),
		slog.Float64("pressure_scalar", s.Pressure),
		slog.Float64("near_pressure_scalar", s.NearPressure),
		slog.Float64("viscosity_strength", s.Viscosity),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
