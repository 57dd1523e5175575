package fluid

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/container"
	"github.com/pthm-cable/sph/parallel"
)

func twoParticles(a, b mgl32.Vec3) *Particles {
	p := NewParticles(2)
	p.Position[0] = a
	p.Position[1] = b
	return p
}

func isFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func TestIsolatedParticleCountsItself(t *testing.T) {
	params := DefaultParams(2)
	p := NewParticles(1)

	s := NewSolver(parallel.Serial{}, SortStable)
	s.Interact(p, params)

	want := params.Mass*Poly6(params.SmoothingRadius, 0) + DensityPadding
	if math.Abs(float64(p.Density[0]-want)) > 1e-4 {
		t.Errorf("density = %v, want %v", p.Density[0], want)
	}
	if p.Accel[0] != (mgl32.Vec3{}) {
		t.Errorf("accel = %v, want zero", p.Accel[0])
	}
}

// Two particles inside each other's smoothing radius must push apart with
// equal and opposite acceleration.
func TestSymmetricPairRepels(t *testing.T) {
	tests := []struct {
		name   string
		dim    int
		radius float32
		a, b   mgl32.Vec3
		axis   int
	}{
		{"2d x axis", 2, 0.25, mgl32.Vec3{-0.1, 0, 0}, mgl32.Vec3{0.1, 0, 0}, 0},
		{"2d y axis", 2, 0.5, mgl32.Vec3{0, -0.2, 0}, mgl32.Vec3{0, 0.2, 0}, 1},
		{"3d z axis", 3, 0.25, mgl32.Vec3{0, 0, -0.1}, mgl32.Vec3{0, 0, 0.1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams(tt.dim)
			params.SmoothingRadius = tt.radius
			params.TargetDensity = 1
			p := twoParticles(tt.a, tt.b)

			s := NewSolver(parallel.Serial{}, SortBitonic)
			s.Interact(p, params)

			a0, a1 := p.Accel[0], p.Accel[1]
			if a0[tt.axis] >= 0 || a1[tt.axis] <= 0 {
				t.Fatalf("not repulsive: a0=%v a1=%v", a0, a1)
			}
			sum := a0.Add(a1)
			if sum.Len() > 1e-4*a0.Len() {
				t.Errorf("accelerations not opposite: a0=%v a1=%v", a0, a1)
			}
			for axis := 0; axis < 3; axis++ {
				if axis != tt.axis && math.Abs(float64(a0[axis])) > 1e-6 {
					t.Errorf("off-axis component %d = %v", axis, a0[axis])
				}
			}
		})
	}
}

// The pair sits exactly one smoothing radius apart, where every kernel and
// kernel slope is zero.
func TestPairAtCutoffDoesNotInteract(t *testing.T) {
	params := DefaultParams(2)
	params.SmoothingRadius = 0.2
	params.TargetDensity = 1
	p := twoParticles(mgl32.Vec3{-0.1, 0, 0}, mgl32.Vec3{0.1, 0, 0})

	s := NewSolver(parallel.Serial{}, SortStable)
	s.Interact(p, params)

	if p.Accel[0].Len() > 1e-6 || p.Accel[1].Len() > 1e-6 {
		t.Errorf("particles exactly one smoothing radius apart interacted: %v %v", p.Accel[0], p.Accel[1])
	}
}

func TestCoincidentParticlesStayFinite(t *testing.T) {
	params := DefaultParams(2)
	p := twoParticles(mgl32.Vec3{0.3, 0.3, 0}, mgl32.Vec3{0.3, 0.3, 0})

	s := NewSolver(parallel.Serial{}, SortStable)
	s.Interact(p, params)

	for i, a := range p.Accel {
		if !isFinite(a) {
			t.Fatalf("accel[%d] = %v", i, a)
		}
		if a.X() != 0 {
			t.Errorf("accel[%d].X = %v, want 0 with +Y fallback", i, a.X())
		}
		if a.Y() == 0 {
			t.Errorf("accel[%d].Y = 0, fallback direction unused", i)
		}
	}
}

func TestDensityFloor(t *testing.T) {
	for _, dim := range []int{2, 3} {
		params := DefaultParams(dim)
		p := NewParticles(400)
		copy(p.Position, randomCloud(400, dim, 1.5, int64(dim)))

		s := NewSolver(parallel.NewPool(4, 1), SortBitonic)
		s.Interact(p, params)
		s.Executor().Close()

		for i := range p.Density {
			if p.Density[i] < DensityPadding || p.NearDensity[i] < DensityPadding {
				t.Fatalf("dim=%d particle %d density=%v near=%v", dim, i, p.Density[i], p.NearDensity[i])
			}
			if p.NearPressure[i] < 0 {
				t.Fatalf("dim=%d particle %d near pressure %v < 0", dim, i, p.NearPressure[i])
			}
		}
	}
}

func TestBoundaryContainment(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		rot  mgl32.Quat
	}{
		{"2d", 2, mgl32.QuatIdent()},
		{"3d aligned", 3, mgl32.QuatIdent()},
		{"3d rotated", 3, mgl32.AnglesToQuat(0.4, 0.9, -0.3, mgl32.XYZ)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams(tt.dim)
			c := container.New(mgl32.Vec3{1, -1, 0}, mgl32.Vec3{2, 1.5, 1})
			c.Rotation = tt.rot
			env := Environment{Gravity: mgl32.Vec3{0, -10, 0}, Container: c}

			rng := rand.New(rand.NewSource(11))
			p := NewParticles(300)
			for i := range p.Position {
				for a := 0; a < tt.dim; a++ {
					p.Position[i][a] = (rng.Float32()*2 - 1) * 6
					p.Velocity[i][a] = (rng.Float32()*2 - 1) * 40
				}
			}

			s := NewSolver(parallel.Serial{}, SortStable)
			s.prepare(params)
			contacts := s.integrate(p, params, env, params.Timestep)
			if contacts == 0 {
				t.Fatal("expected wall contacts")
			}

			min, max := c.LocalExtentsPadded(params.Radius)
			const tol = 1e-4
			for i, pos := range p.Position {
				local := c.ToLocal(pos)
				if tt.dim == 2 {
					local = pos.Sub(c.Position)
				}
				for a := 0; a < tt.dim; a++ {
					if local[a] < min[a]-tol || local[a] > max[a]+tol {
						t.Fatalf("particle %d axis %d at %v outside [%v, %v]", i, a, local[a], min[a], max[a])
					}
				}
			}
		})
	}
}

func TestWallBounceLosesEnergy(t *testing.T) {
	tests := []struct {
		name    string
		damping float32
		vel     mgl32.Vec3
		axis    int
	}{
		{"floor", 0.95, mgl32.Vec3{0, -5, 0}, 1},
		{"right wall", 0.5, mgl32.Vec3{8, 0, 0}, 0},
		{"inelastic", 0, mgl32.Vec3{0, 3, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams(2)
			params.CollisionDamping = tt.damping
			env := Environment{Container: container.New(mgl32.Vec3{}, mgl32.Vec3{2, 2, 0})}

			p := NewParticles(1)
			p.Position[0] = tt.vel.Normalize().Mul(0.94)
			p.Velocity[0] = tt.vel

			s := NewSolver(parallel.Serial{}, SortStable)
			s.prepare(params)
			if s.integrate(p, params, env, params.Timestep) != 1 {
				t.Fatal("expected one contact")
			}

			before := math.Abs(float64(tt.vel[tt.axis]))
			after := math.Abs(float64(p.Velocity[0][tt.axis]))
			if after >= before {
				t.Errorf("|v| %v -> %v, want decrease", before, after)
			}
			if math.Abs(after-float64(tt.damping)*before) > 1e-5 {
				t.Errorf("|v| after = %v, want %v", after, float64(tt.damping)*before)
			}
			if p.Velocity[0][tt.axis]*tt.vel[tt.axis] > 0 {
				t.Error("velocity not reflected")
			}
		})
	}
}

func TestCollideAxesInsideIsNoop(t *testing.T) {
	pos := mgl32.Vec3{0.1, 0.2, 50}
	vel := mgl32.Vec3{1, 2, 3}
	hit := CollideAxes(&pos, &vel, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, 0.5, 2)
	if hit {
		t.Error("unexpected hit, z must be ignored in 2D")
	}
	if pos != (mgl32.Vec3{0.1, 0.2, 50}) || vel != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("state changed: pos=%v vel=%v", pos, vel)
	}
}

func TestFreeFall(t *testing.T) {
	const g = -9.8
	params := DefaultParams(2)
	params.PressureScalar = 0
	params.NearPressureScalar = 0
	params.ViscosityStrength = 0
	params.Timestep = 1.0 / 120

	env := Environment{
		Gravity:   mgl32.Vec3{0, g, 0},
		Container: container.New(mgl32.Vec3{}, mgl32.Vec3{10, 100, 0}),
	}

	p := NewParticles(1)
	p.Position[0] = mgl32.Vec3{0, 20, 0}
	const y0 = 20.0

	s := NewSolver(parallel.Serial{}, SortBitonic)
	const steps = 60
	for i := 0; i < steps; i++ {
		if st := s.Step(p, params, env, params.Timestep); st.Contacts != 0 {
			t.Fatalf("step %d: unexpected wall contact", i)
		}
	}

	tt := float64(steps) * float64(params.Timestep)
	vy := float64(p.Velocity[0].Y())
	if math.Abs(vy-g*tt) > 1e-3 {
		t.Errorf("velocity.y = %v, want %v", vy, g*tt)
	}

	y := float64(p.Position[0].Y())
	want := y0 + 0.5*g*tt*tt
	if tol := math.Abs(g) * float64(params.Timestep) * tt; math.Abs(y-want) > tol {
		t.Errorf("position.y = %v, want %v ± %v", y, want, tol)
	}
	if p.Position[0].X() != 0 {
		t.Errorf("position.x drifted to %v", p.Position[0].X())
	}
}

func TestCursorForce(t *testing.T) {
	c := CursorForce{Position: mgl32.Vec3{1, 0, 0}, Radius: 2, Strength: 20}

	tests := []struct {
		name string
		pos  mgl32.Vec3
		want mgl32.Vec3
	}{
		{"inside pulls inward", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{20, 0, 0}},
		{"outside radius", mgl32.Vec3{4, 0, 0}, mgl32.Vec3{}},
		{"at cursor", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.At(tt.pos); !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("At(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	c.Strength = -20
	if got := c.At(mgl32.Vec3{0, 0, 0}); got.X() >= 0 {
		t.Errorf("negative strength should push outward, got %v", got)
	}
}

func TestCursorForceAppliedInStep(t *testing.T) {
	params := DefaultParams(2)
	env := Environment{
		Container: container.New(mgl32.Vec3{}, mgl32.Vec3{10, 10, 0}),
		Cursor:    &CursorForce{Position: mgl32.Vec3{1, 0, 0}, Radius: 2, Strength: 20},
	}
	p := NewParticles(1)

	s := NewSolver(parallel.Serial{}, SortStable)
	s.Step(p, params, env, params.Timestep)

	if p.Velocity[0].X() <= 0 {
		t.Errorf("velocity.x = %v, want pull toward cursor", p.Velocity[0].X())
	}
}

// The per-particle sums visit neighbours in (key, index) order regardless of
// executor or sort strategy, so results match bit for bit.
func TestStepDeterministicAcrossExecutors(t *testing.T) {
	params := DefaultParams(2)
	c := container.New(mgl32.Vec3{}, mgl32.Vec3{4, 4, 0})
	env := Environment{Gravity: mgl32.Vec3{0, -10, 0}, Container: c}
	start := Spawn(SpawnConfig{Layout: LayoutGrid, Count: 900, Jitter: 0.01, Seed: 5}, params, c)

	run := func(exec parallel.Executor, strategy SortStrategy) *Particles {
		defer exec.Close()
		p := start.Clone()
		s := NewSolver(exec, strategy)
		for i := 0; i < 20; i++ {
			s.Step(p, params, env, params.Timestep)
		}
		return p
	}

	ref := run(parallel.Serial{}, SortStable)
	for _, tc := range []struct {
		name     string
		exec     parallel.Executor
		strategy SortStrategy
	}{
		{"serial bitonic", parallel.Serial{}, SortBitonic},
		{"pool bitonic", parallel.NewPool(4, 1), SortBitonic},
		{"pool stable", parallel.NewPool(3, 1), SortStable},
	} {
		got := run(tc.exec, tc.strategy)
		if !reflect.DeepEqual(got.Position, ref.Position) || !reflect.DeepEqual(got.Velocity, ref.Velocity) {
			t.Errorf("%s diverged from serial stable reference", tc.name)
		}
	}
}

func TestDamBreakStaysFiniteAndContained(t *testing.T) {
	params := DefaultParams(2)
	c := container.New(mgl32.Vec3{}, mgl32.Vec3{3, 2, 0})
	env := Environment{Gravity: mgl32.Vec3{0, -10, 0}, Container: c}
	p := Spawn(SpawnConfig{Layout: LayoutGrid, Count: 400}, params, c)

	pool := parallel.NewPool(0, 0)
	defer pool.Close()
	s := NewSolver(pool, SortBitonic)
	for i := 0; i < 120; i++ {
		s.Step(p, params, env, params.Timestep)
	}

	min, max := c.ExtentsPadded(params.Radius)
	for i, pos := range p.Position {
		if !isFinite(pos) || !isFinite(p.Velocity[i]) {
			t.Fatalf("particle %d not finite: pos=%v vel=%v", i, pos, p.Velocity[i])
		}
		if pos.X() < min.X()-1e-4 || pos.X() > max.X()+1e-4 || pos.Y() < min.Y()-1e-4 || pos.Y() > max.Y()+1e-4 {
			t.Fatalf("particle %d escaped: %v", i, pos)
		}
	}
}

type recordingTracer []string

func (r *recordingTracer) StartPhase(phase string) { *r = append(*r, phase) }

func TestStepPhaseOrder(t *testing.T) {
	params := DefaultParams(2)
	env := Environment{Container: container.New(mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})}

	var tr recordingTracer
	s := NewSolver(parallel.Serial{}, SortStable)
	s.Tracer = &tr
	s.Step(NewParticles(3), params, env, params.Timestep)

	want := []string{PhasePredict, PhaseSpatialIndex, PhaseDensity, PhaseForces, PhaseIntegrate}
	if !reflect.DeepEqual([]string(tr), want) {
		t.Errorf("phases = %v, want %v", tr, want)
	}
}

func BenchmarkStep2D(b *testing.B) {
	params := DefaultParams(2)
	c := container.New(mgl32.Vec3{}, mgl32.Vec3{8, 6.4, 0})
	env := Environment{Gravity: mgl32.Vec3{0, -10, 0}, Container: c}
	p := Spawn(SpawnConfig{Layout: LayoutGrid, Count: 2500}, params, c)

	pool := parallel.NewPool(0, 0)
	defer pool.Close()
	s := NewSolver(pool, SortBitonic)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(p, params, env, params.Timestep)
	}
}
