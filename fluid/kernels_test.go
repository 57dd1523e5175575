package fluid

import (
	"math"
	"testing"
)

func TestKernelsZeroBeyondRadius(t *testing.T) {
	for _, dim := range []int{2, 3} {
		for _, h := range []float32{0.05, 0.2, 1, 3.5} {
			k := NewKernels(h, dim)
			for _, d := range []float32{h * 1.0001, h * 1.5, h * 10} {
				fns := map[string]float32{
					"density":            k.Density(d),
					"density derivative": k.DensityDerivative(d),
					"near":               k.Near(d),
					"near derivative":    k.NearDerivative(d),
					"viscosity":          k.Viscosity(d),
				}
				for name, v := range fns {
					if v != 0 {
						t.Errorf("dim=%d h=%v d=%v: %s = %v, want 0", dim, h, d, name, v)
					}
				}
			}
		}
	}
}

func TestKernelsVanishAtCutoff(t *testing.T) {
	for _, dim := range []int{2, 3} {
		k := NewKernels(0.25, dim)
		if v := k.Density(0.25); v != 0 {
			t.Errorf("dim=%d density(h) = %v", dim, v)
		}
		if v := k.DensityDerivative(0.25); v != 0 {
			t.Errorf("dim=%d density'(h) = %v", dim, v)
		}
		if v := k.Near(0.25); v != 0 {
			t.Errorf("dim=%d near(h) = %v", dim, v)
		}
		if v := k.NearDerivative(0.25); v != 0 {
			t.Errorf("dim=%d near'(h) = %v", dim, v)
		}
		if v := k.Viscosity(0.25); v != 0 {
			t.Errorf("dim=%d viscosity(h) = %v", dim, v)
		}
	}
}

func TestPoly6MonotoneDecreasing(t *testing.T) {
	for _, dim := range []int{2, 3} {
		k := NewKernels(0.2, dim)
		prev := k.Density(0)
		if prev <= 0 {
			t.Fatalf("dim=%d density(0) = %v, want > 0", dim, prev)
		}
		const steps = 200
		for i := 1; i < steps; i++ {
			d := 0.2 * float32(i) / steps
			v := k.Density(d)
			if v >= prev {
				t.Fatalf("dim=%d density not decreasing at d=%v: %v >= %v", dim, d, v, prev)
			}
			prev = v
		}
	}
}

func TestDerivativesNonPositive(t *testing.T) {
	for _, dim := range []int{2, 3} {
		k := NewKernels(0.5, dim)
		for i := 0; i < 50; i++ {
			d := 0.5 * float32(i) / 50
			if v := k.DensityDerivative(d); v > 0 {
				t.Errorf("dim=%d density'(%v) = %v > 0", dim, d, v)
			}
			if v := k.NearDerivative(d); v > 0 {
				t.Errorf("dim=%d near'(%v) = %v > 0", dim, d, v)
			}
		}
	}
}

// Derivatives should match a central finite difference of their kernels.
func TestDerivativesMatchFiniteDifference(t *testing.T) {
	for _, dim := range []int{2, 3} {
		k := NewKernels(1, dim)
		const step = 1e-3
		for _, d := range []float32{0.1, 0.3, 0.5, 0.8} {
			fd := (k.Density(d+step) - k.Density(d-step)) / (2 * step)
			if got := k.DensityDerivative(d); math.Abs(float64(got-fd)) > 1e-2*math.Abs(float64(fd))+1e-3 {
				t.Errorf("dim=%d density'(%v) = %v, finite difference %v", dim, d, got, fd)
			}
			fd = (k.Near(d+step) - k.Near(d-step)) / (2 * step)
			if got := k.NearDerivative(d); math.Abs(float64(got-fd)) > 1e-2*math.Abs(float64(fd))+1e-3 {
				t.Errorf("dim=%d near'(%v) = %v, finite difference %v", dim, d, got, fd)
			}
		}
	}
}

func TestPackageKernelsMatch2DFormulas(t *testing.T) {
	const h, d = 0.2, 0.05
	r4 := math.Pow(h, 4)
	r5 := math.Pow(h, 5)
	r8 := math.Pow(h, 8)

	tests := []struct {
		name string
		got  float32
		want float64
	}{
		{"poly6", Poly6(h, d), 6 / (math.Pi * r4) * (h - d) * (h - d)},
		{"poly6 derivative", Poly6Derivative(h, d), 12 / (math.Pi * r4) * (d - h)},
		{"spiky near", SpikyNear(h, d), 10 / (math.Pi * r5) * math.Pow(h-d, 3)},
		{"spiky near derivative", SpikyNearDerivative(h, d), -30 / (math.Pi * r5) * math.Pow(h-d, 2)},
		{"viscosity", ViscosityKernel(h, d), 4 / (math.Pi * r8) * math.Pow(h*h-d*d, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(float64(tt.got)-tt.want) > 1e-4*math.Abs(tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestNewKernelsUnknownDimFallsBackTo3D(t *testing.T) {
	k := NewKernels(1, 7)
	if k.Dim != 3 {
		t.Errorf("Dim = %d, want 3", k.Dim)
	}
	if k.Density(0) != NewKernels(1, 3).Density(0) {
		t.Error("fallback constants differ from 3D")
	}
}
