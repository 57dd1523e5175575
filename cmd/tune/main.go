// Command tune searches pressure and viscosity settings with CMA-ES, scoring
// each candidate by how closely a headless run holds the target density.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/sph/config"
)

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval               int     `csv:"eval"`
	Fitness            float64 `csv:"fitness"`
	DensityError       float64 `csv:"density_error"`
	PressureScalar     float64 `csv:"pressure_scalar"`
	NearPressureScalar float64 `csv:"near_pressure_scalar"`
	ViscosityStrength  float64 `csv:"viscosity_strength"`
}

func newRecord(eval int, fitness, densityError float64, values []float64) EvalRecord {
	return EvalRecord{
		Eval:               eval,
		Fitness:            fitness,
		DensityError:       densityError,
		PressureScalar:     values[0],
		NearPressureScalar: values[1],
		ViscosityStrength:  values[2],
	}
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	dim := flag.Int("dim", 0, "Override simulation.dim (2 or 3)")
	particles := flag.Int("particles", 400, "Particle count per run (0 = use config)")
	maxTicks := flag.Int("max-ticks", 600, "Ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	newConfig := func() (*config.Config, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		if *dim != 0 {
			cfg.Simulation.Dim = *dim
		}
		if *particles > 0 {
			cfg.Mode().Spawn.Count = *particles
		}
		return cfg, cfg.Finalize()
	}
	baseCfg, err := newConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, newConfig)

	n := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*n/2
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = values
			}

			records := []EvalRecord{newRecord(evalCount, fitness, evaluator.LastDensityError(), values)}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(records, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(records, logFile)
			}
			if werr != nil {
				log.Printf("failed to write log row: %v", werr)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: fitness=%.4f density_err=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, fitness, evaluator.LastDensityError(), bestFitness,
				formatDuration(elapsed), formatDuration(remaining))
			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", n, popSize, *maxEvals)
	fmt.Printf("Dim %d, %d particles, seeds per evaluation: %d, ticks per run: %d\n",
		baseCfg.Simulation.Dim, baseCfg.Derived.Spawn.Count, *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := newConfig()
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)
	if err := bestCfg.Finalize(); err != nil {
		log.Fatalf("best parameters rejected: %v", err)
	}
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	if windows := evaluator.BestWindows(); len(windows) > 0 {
		windowsPath := filepath.Join(*outputDir, "best_run.csv")
		f, err := os.Create(windowsPath)
		if err != nil {
			log.Printf("failed to create best run log: %v", err)
			return
		}
		defer f.Close()
		if err := gocsv.Marshal(windows, f); err != nil {
			log.Printf("failed to write best run log: %v", err)
		} else {
			fmt.Printf("Best run windows saved to: %s\n", windowsPath)
		}
	}
}
