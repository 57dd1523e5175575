package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/sph/fluid"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Simulation.Dim != 2 {
		t.Errorf("dim = %d, want 2", cfg.Simulation.Dim)
	}
	p := cfg.Derived.Params
	if p.SmoothingRadius != 0.2 || p.PressureScalar != 30 || p.Dim != 2 {
		t.Errorf("unexpected 2D params: %+v", p)
	}
	if cfg.Derived.Gravity.Y() != -10 {
		t.Errorf("gravity = %v", cfg.Derived.Gravity)
	}
	if cfg.Derived.Spawn.Layout != fluid.LayoutGrid || cfg.Derived.Spawn.Count != 2500 {
		t.Errorf("spawn = %+v", cfg.Derived.Spawn)
	}
	if cfg.Derived.Sort != fluid.SortBitonic {
		t.Errorf("sort = %v", cfg.Derived.Sort)
	}
	if !cfg.Derived.Container.IsAxisAligned() {
		t.Error("default container should be axis-aligned")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, `
simulation:
  dim: 3
fluid_3d:
  particle:
    pressure_scalar: 50
  container:
    rotation: {x: 0, y: 0, z: 30}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := cfg.Derived.Params
	if p.Dim != 3 || p.PressureScalar != 50 {
		t.Errorf("override not applied: %+v", p)
	}
	if p.SmoothingRadius != 0.25 {
		t.Errorf("untouched default lost: smoothing_radius = %v", p.SmoothingRadius)
	}
	if cfg.Derived.Container.IsAxisAligned() {
		t.Error("rotation not applied to 3D container")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero smoothing radius", "fluid_2d:\n  particle:\n    smoothing_radius: 0\n"},
		{"zero mass", "fluid_2d:\n  particle:\n    mass: 0\n"},
		{"tiny container", "fluid_2d:\n  container:\n    size: {x: 0.01, y: 5, z: 0}\n"},
		{"bad dim", "simulation:\n  dim: 4\n"},
		{"bad layout", "fluid_2d:\n  spawn:\n    layout: spiral\n"},
		{"bad sort", "simulation:\n  sort: bubble\n"},
		{"bad gradient", "render:\n  gradient: sepia\n"},
		{"nan gravity", "fluid_2d:\n  gravity: {x: 0, y: .nan, z: 0}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateWrapsInvalidParam(t *testing.T) {
	cfg := MustLoad("")
	cfg.Fluid2D.Particle.Mass = -1
	if err := cfg.Finalize(); !errors.Is(err, fluid.ErrInvalidParam) {
		t.Errorf("Finalize() = %v, want ErrInvalidParam", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := MustLoad("")
	p := cfg.Derived.Params
	p.PressureScalar = 12.5
	p.ViscosityStrength = 0.3
	cfg.SetParams(p)

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Derived.Params != p {
		t.Errorf("round trip params = %+v, want %+v", back.Derived.Params, p)
	}
}
