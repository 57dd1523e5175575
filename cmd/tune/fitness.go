package main

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/sim"
	"github.com/pthm-cable/sph/telemetry"
)

// Fitness weights and penalties.
const (
	keWeight       = 0.05 // per-particle kinetic energy against density error
	failurePenalty = 1e6  // score for runs that blow up or fail to build
	warmupWindows  = 1    // windows skipped while the block collapses
)

// ConfigFactory returns a fresh finalized base config for one run.
type ConfigFactory func() (*config.Config, error)

// FitnessEvaluator runs headless simulations and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	newConfig   ConfigFactory
	statsWindow float64

	mu          sync.Mutex
	bestFitness float64
	bestWindows []telemetry.WindowStats
	lastError   float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, newConfig ConfigFactory) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		newConfig:   newConfig,
		statsWindow: 1.0,
		bestFitness: math.Inf(1),
	}
}

// BestWindows returns the window stats of the best seed from the best evaluation.
func (fe *FitnessEvaluator) BestWindows() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestWindows
}

// LastDensityError returns the mean density error from the most recent evaluation.
func (fe *FitnessEvaluator) LastDensityError() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastError
}

type seedResult struct {
	fitness      float64
	densityError float64
	windows      []telemetry.WindowStats
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Seeds run in parallel and the mean is returned.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				slog.Warn("evaluation failed", "seed", s, "error", err)
				results[idx] = seedResult{fitness: failurePenalty}
				return
			}
			fitness, densErr := score(windows)
			results[idx] = seedResult{fitness: fitness, densityError: densErr, windows: windows}
		}(i, seed)
	}
	wg.Wait()

	var total, totalErr float64
	best := results[0]
	for _, r := range results {
		total += r.fitness
		totalErr += r.densityError
		if r.fitness < best.fitness {
			best = r
		}
	}
	n := float64(len(results))
	avg := total / n

	fe.mu.Lock()
	if avg < fe.bestFitness {
		fe.bestFitness = avg
		fe.bestWindows = best.windows
	}
	fe.lastError = totalErr / n
	fe.mu.Unlock()

	return avg
}

// runSimulation executes one headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg, err := fe.newConfig()
	if err != nil {
		return nil, err
	}
	fe.params.ApplyToConfig(cfg, x)
	// Seeds already run in parallel.
	cfg.Parallel.Workers = 1
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	var windows []telemetry.WindowStats
	s, err := sim.New(cfg, sim.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(w telemetry.WindowStats) {
			windows = append(windows, w)
		},
	})
	if err != nil {
		return nil, err
	}
	defer s.Close()

	for s.Tick() < int32(fe.maxTicks) {
		s.Step()
		if n := len(windows); n > 0 && !finite(windows[n-1]) {
			return windows, fmt.Errorf("non-finite state at tick %d", s.Tick())
		}
	}
	return windows, nil
}

// score turns a run's windows into fitness: mean relative density error plus
// a kinetic energy penalty, both averaged over the post-warmup windows.
// Runs too short to produce a scored window receive the failure penalty.
func score(windows []telemetry.WindowStats) (fitness, densityError float64) {
	if len(windows) <= warmupWindows {
		return failurePenalty, 0
	}
	var errSum, keSum float64
	scored := windows[warmupWindows:]
	for _, w := range scored {
		if !finite(w) {
			return failurePenalty, 0
		}
		errSum += w.DensityError
		if w.Particles > 0 {
			keSum += w.KineticEnergy / float64(w.Particles)
		}
	}
	n := float64(len(scored))
	densityError = errSum / n
	return densityError + keWeight*keSum/n, densityError
}

func finite(w telemetry.WindowStats) bool {
	for _, v := range []float64{w.DensityError, w.KineticEnergy, w.SpeedMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
