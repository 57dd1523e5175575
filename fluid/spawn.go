package fluid

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/sph/container"
)

// Layout selects how particles are placed on spawn or reset.
type Layout int

const (
	LayoutGrid Layout = iota
	LayoutRandom
)

// ParseLayout maps "grid" or "random" to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "grid", "":
		return LayoutGrid, nil
	case "random":
		return LayoutRandom, nil
	}
	return 0, fmt.Errorf("%w: layout %q", ErrInvalidParam, s)
}

func (l Layout) String() string {
	if l == LayoutRandom {
		return "random"
	}
	return "grid"
}

// SpawnConfig describes an initial particle block.
type SpawnConfig struct {
	Layout  Layout
	Count   int
	Spacing float32 // grid pitch; 0 means one particle diameter
	Seed    int64
	Jitter  float32 // grid displacement amplitude in world units
}

// jitterFreq scales grid coordinates into noise space.
const jitterFreq = 0.37

// Spawn builds a fresh particle buffer inside c. Velocity and acceleration
// start at zero and the result depends only on its arguments.
func Spawn(cfg SpawnConfig, params Params, c container.Container) *Particles {
	n := max(cfg.Count, 0)
	p := NewParticles(n)
	if n == 0 {
		return p
	}

	min, max := c.LocalExtentsPadded(params.Radius)

	switch cfg.Layout {
	case LayoutRandom:
		rng := rand.New(rand.NewSource(cfg.Seed))
		for i := range p.Position {
			var local mgl32.Vec3
			for a := 0; a < params.Dim; a++ {
				local[a] = min[a] + rng.Float32()*(max[a]-min[a])
			}
			p.Position[i] = toWorld(c, local, params.Dim)
		}
	default:
		spacing := cfg.Spacing
		if spacing <= 0 {
			spacing = 2 * params.Radius
		}
		nx, ny, nz := gridShape(n, params.Dim)
		origin := mgl32.Vec3{
			-float32(nx-1) * spacing / 2,
			-float32(ny-1) * spacing / 2,
			-float32(nz-1) * spacing / 2,
		}

		var noise opensimplex.Noise32
		if cfg.Jitter > 0 {
			noise = opensimplex.New32(cfg.Seed)
		}

		for i := range p.Position {
			x, y, z := i%nx, (i/nx)%ny, i/(nx*ny)
			local := origin.Add(mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(spacing))
			if params.Dim == 2 {
				local[2] = 0
			}
			if noise != nil {
				local = local.Add(jitterAt(noise, x, y, z, params.Dim).Mul(cfg.Jitter))
			}
			for a := 0; a < params.Dim; a++ {
				local[a] = mgl32.Clamp(local[a], min[a], max[a])
			}
			p.Position[i] = toWorld(c, local, params.Dim)
		}
	}

	copy(p.Predicted, p.Position)
	return p
}

// gridShape picks per-axis counts whose product covers n.
func gridShape(n, dim int) (nx, ny, nz int) {
	if dim == 3 {
		side := int(math.Ceil(math.Cbrt(float64(n))))
		layer := side * side
		return side, side, (n + layer - 1) / layer
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	return side, (n + side - 1) / side, 1
}

// jitterAt samples an independent noise channel per axis.
func jitterAt(noise opensimplex.Noise32, x, y, z, dim int) mgl32.Vec3 {
	fx := float32(x) * jitterFreq
	fy := float32(y) * jitterFreq
	fz := float32(z) * jitterFreq
	j := mgl32.Vec3{
		noise.Eval3(fx, fy, fz),
		noise.Eval3(fx+17.3, fy, fz),
	}
	if dim == 3 {
		j[2] = noise.Eval3(fx, fy+31.7, fz)
	}
	return j
}

func toWorld(c container.Container, local mgl32.Vec3, dim int) mgl32.Vec3 {
	if dim == 2 {
		w := local.Add(c.Position)
		w[2] = 0
		return w
	}
	return c.ToWorld(local)
}
