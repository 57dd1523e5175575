package fluid

import "math"

// DensityPadding is added to every density sum so that density and
// near-density stay strictly positive.
const DensityPadding float32 = 0.00001

// All kernels share one shape per term, only the normalisation differs
// between 2D and 3D:
//
//	density           c * (h - d)^2
//	density gradient -c * (h - d)
//	near              c * (h - d)^3
//	near gradient    -c * (h - d)^2
//	viscosity         c * (h^2 - d^2)^3
//
// Every term is zero for d > h and reaches zero continuously at d == h.

// Poly6 is the 2D density kernel 6/(pi h^4) * (h - d)^2.
func Poly6(radius, dist float32) float32 {
	return NewKernels(radius, 2).Density(dist)
}

// Poly6Derivative is the 2D density gradient 12/(pi h^4) * (d - h).
func Poly6Derivative(radius, dist float32) float32 {
	return NewKernels(radius, 2).DensityDerivative(dist)
}

// SpikyNear is the 2D near-density kernel 10/(pi h^5) * (h - d)^3.
func SpikyNear(radius, dist float32) float32 {
	return NewKernels(radius, 2).Near(dist)
}

// SpikyNearDerivative is the 2D near-density gradient -30/(pi h^5) * (h - d)^2.
func SpikyNearDerivative(radius, dist float32) float32 {
	return NewKernels(radius, 2).NearDerivative(dist)
}

// ViscosityKernel is the 2D viscosity kernel 4/(pi h^8) * (h^2 - d^2)^3.
func ViscosityKernel(radius, dist float32) float32 {
	return NewKernels(radius, 2).Viscosity(dist)
}

// Kernels holds the normalisation constants for one smoothing radius and
// dimension. The zero value is unusable; build with NewKernels.
type Kernels struct {
	Radius float32
	Dim    int

	radiusSq     float32
	density      float32
	densityDeriv float32
	near         float32
	nearDeriv    float32
	viscosity    float32
}

// NewKernels precomputes the kernel constants. dim is 2 or 3; any other
// value is treated as 3.
func NewKernels(radius float32, dim int) Kernels {
	h := float64(radius)
	k := Kernels{
		Radius:   radius,
		Dim:      dim,
		radiusSq: radius * radius,
	}
	if dim == 2 {
		k.density = float32(6 / (math.Pi * math.Pow(h, 4)))
		k.densityDeriv = float32(12 / (math.Pi * math.Pow(h, 4)))
		k.near = float32(10 / (math.Pi * math.Pow(h, 5)))
		k.nearDeriv = float32(30 / (math.Pi * math.Pow(h, 5)))
		k.viscosity = float32(4 / (math.Pi * math.Pow(h, 8)))
		return k
	}
	k.Dim = 3
	k.density = float32(15 / (2 * math.Pi * math.Pow(h, 5)))
	k.densityDeriv = float32(15 / (math.Pi * math.Pow(h, 5)))
	k.near = float32(15 / (math.Pi * math.Pow(h, 6)))
	k.nearDeriv = float32(45 / (math.Pi * math.Pow(h, 6)))
	k.viscosity = float32(315 / (64 * math.Pi * math.Pow(h, 9)))
	return k
}

// Density evaluates the density kernel at distance d.
func (k Kernels) Density(d float32) float32 {
	if d > k.Radius {
		return 0
	}
	v := k.Radius - d
	return k.density * v * v
}

// DensityDerivative evaluates the density kernel slope; never positive.
func (k Kernels) DensityDerivative(d float32) float32 {
	if d > k.Radius {
		return 0
	}
	return -k.densityDeriv * (k.Radius - d)
}

// Near evaluates the near-density kernel.
func (k Kernels) Near(d float32) float32 {
	if d > k.Radius {
		return 0
	}
	v := k.Radius - d
	return k.near * v * v * v
}

// NearDerivative evaluates the near-density kernel slope; never positive.
func (k Kernels) NearDerivative(d float32) float32 {
	if d > k.Radius {
		return 0
	}
	v := k.Radius - d
	return -k.nearDeriv * v * v
}

// Viscosity evaluates the viscosity kernel.
func (k Kernels) Viscosity(d float32) float32 {
	if d > k.Radius {
		return 0
	}
	v := k.radiusSq - d*d
	return k.viscosity * v * v * v
}
