package fluid

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/container"
	"github.com/pthm-cable/sph/parallel"
)

// Phase names reported to a PhaseTracer during Step.
const (
	PhasePredict      = "predict"
	PhaseSpatialIndex = "spatial_index"
	PhaseDensity      = "density"
	PhaseForces       = "forces"
	PhaseIntegrate    = "integrate"
)

// PhaseTracer receives a call as each pass starts.
type PhaseTracer interface {
	StartPhase(phase string)
}

// Environment is the external state a tick reads besides Params.
type Environment struct {
	Gravity   mgl32.Vec3
	Cursor    *CursorForce // nil when inactive
	Container container.Container
}

// StepStats summarises one tick.
type StepStats struct {
	Contacts int // particles clamped by a wall
}

// Solver owns the scratch state shared by the passes of a tick.
// A Solver is not safe for concurrent Steps.
type Solver struct {
	exec    parallel.Executor
	index   *SpatialIndex
	kernels Kernels

	Tracer PhaseTracer
}

// NewSolver creates a solver that runs every pass through exec.
func NewSolver(exec parallel.Executor, strategy SortStrategy) *Solver {
	return &Solver{
		exec:  exec,
		index: NewSpatialIndex(strategy),
	}
}

// Index returns the spatial index built by the last Step.
func (s *Solver) Index() *SpatialIndex { return s.index }

// Executor returns the executor the passes run on.
func (s *Solver) Executor() parallel.Executor { return s.exec }

func (s *Solver) phase(name string) {
	if s.Tracer != nil {
		s.Tracer.StartPhase(name)
	}
}

func (s *Solver) prepare(params Params) {
	if s.kernels.Radius != params.SmoothingRadius || s.kernels.Dim != params.Dim {
		s.kernels = NewKernels(params.SmoothingRadius, params.Dim)
	}
}

// Step advances p by dt: predict, rebuild the spatial index, density,
// forces, then integrate and collide. params must have passed Validate.
func (s *Solver) Step(p *Particles, params Params, env Environment, dt float32) StepStats {
	s.prepare(params)

	s.phase(PhasePredict)
	s.predictPositions(p, params.Lookahead)

	s.phase(PhaseSpatialIndex)
	s.index.Rebuild(p.Predicted, params.SmoothingRadius, params.Dim, s.exec)

	s.phase(PhaseDensity)
	s.computeDensities(p, params)

	s.phase(PhaseForces)
	s.computeForces(p, params)

	s.phase(PhaseIntegrate)
	contacts := s.integrate(p, params, env, dt)

	return StepStats{Contacts: contacts}
}

// Interact runs predict, index, density and forces without integrating,
// leaving the fresh fields in p.
func (s *Solver) Interact(p *Particles, params Params) {
	s.prepare(params)
	s.predictPositions(p, params.Lookahead)
	s.index.Rebuild(p.Predicted, params.SmoothingRadius, params.Dim, s.exec)
	s.computeDensities(p, params)
	s.computeForces(p, params)
}
