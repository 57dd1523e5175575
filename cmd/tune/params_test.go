package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/sph/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{30, 1, 0.1}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-5, 50, 0.5})
	want := []float64{1, 10, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	tests := []struct {
		name string
		dim  int
	}{
		{"2d", 2},
		{"3d", 3},
	}
	pv := NewParamVector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load("")
			if err != nil {
				t.Fatal(err)
			}
			cfg.Simulation.Dim = tt.dim
			pv.ApplyToConfig(cfg, []float64{12, 200, 0.3})
			if err := cfg.Finalize(); err != nil {
				t.Fatal(err)
			}
			got := pv.ExtractFromConfig(cfg)
			want := []float64{12, 10, 0.3}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
				}
			}
			if p := cfg.Derived.Params; p.PressureScalar != 12 {
				t.Errorf("derived pressure = %v, want 12", p.PressureScalar)
			}
		})
	}
}
