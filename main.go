package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/game"
	"github.com/pthm-cable/sph/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Spawn seed (0 = use config, -1 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")
	dim := flag.Int("dim", 0, "Override simulation.dim (2 or 3)")
	particles := flag.Int("particles", 0, "Override spawn count (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dim != 0 {
		cfg.Simulation.Dim = *dim
	}
	if *particles > 0 {
		cfg.Mode().Spawn.Count = *particles
	}
	if *stepsPerUpdate > 0 {
		cfg.Simulation.StepsPerFrame = *stepsPerUpdate
	}
	if err := cfg.Finalize(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed < 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		s, err := sim.New(cfg, opts)
		if err != nil {
			slog.Error("failed to create simulation", "error", err)
			os.Exit(1)
		}
		defer s.Close()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
			"steps_per_update", cfg.Simulation.StepsPerFrame,
		)

		for {
			s.Run(cfg.Simulation.StepsPerFrame)

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", s.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "SPH Fluid")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape deselects the inspected particle instead of closing the window.
	rl.SetExitKey(0)

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
