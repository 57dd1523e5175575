// Package game is the raylib front end: it owns a sim.Simulation, polls
// input into simulation commands and draws the fluid with its overlays.
package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/camera"
	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/inspector"
	"github.com/pthm-cable/sph/palette"
	"github.com/pthm-cable/sph/renderer"
	"github.com/pthm-cable/sph/sim"
	"github.com/pthm-cable/sph/ui"
)

// MaxStepsPerUpdate bounds the ',' / '.' speed control.
const MaxStepsPerUpdate = 10

// Game holds the simulation plus everything needed to show and steer it.
type Game struct {
	sim *sim.Simulation
	cfg *config.Config
	dim int

	// Cameras: camera for 2D, orbit for 3D.
	camera *camera.Camera
	orbit  *camera.Orbit

	// Rendering
	particles *renderer.ParticleRenderer
	hashGrid  renderer.HashGridOverlay
	inspector *inspector.Inspector

	// UI
	hud       *ui.HUD
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	params    *ui.ParamPanel

	// State
	paused         bool
	stepsPerUpdate int
	mouseWorld     mgl32.Vec3 // cursor projected into the simulation
	mouseValid     bool

	screenWidth, screenHeight float32
}

// NewGame creates the simulation and its front end. The raylib window must
// already be open.
func NewGame(cfg *config.Config, opts sim.Options) (*Game, error) {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	pal, err := palette.New(cfg.Render.Gradient)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("game: %w", err)
	}

	w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	g := &Game{
		sim:            s,
		cfg:            cfg,
		dim:            s.Params().Dim,
		particles:      renderer.NewParticleRenderer(pal, float32(cfg.Render.MaxColorSpeed)),
		inspector:      inspector.NewInspector(int32(w), int32(h)),
		hud:            ui.NewHUD(),
		overlays:       ui.NewOverlayRegistry(),
		controls:       ui.NewControlsPanel(10, 110, 240),
		perfPanel:      ui.NewPerfPanel(10, 110),
		params:         ui.NewParamPanel(10, 110, 280, ui.DefaultSliders(s.Params())),
		stepsPerUpdate: max(cfg.Simulation.StepsPerFrame, 1),
		screenWidth:    w,
		screenHeight:   h,
	}

	box := s.Container()
	if g.dim == 3 {
		g.orbit = camera.NewOrbit(box.Position, box.Size.Len()*1.2)
	} else {
		lo, hi := box.Extents()
		g.camera = camera.New(w, h, lo[0], lo[1], hi[0], hi[1], float32(cfg.Screen.PixelsPerUnit))
	}

	slog.Info("game created",
		"dim", g.dim,
		"gradient", pal.Name(),
		"steps_per_update", g.stepsPerUpdate,
	)
	return g, nil
}

// SetStepsPerUpdate sets how many ticks each Update advances.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = min(max(n, 1), MaxStepsPerUpdate)
}

// Update polls input and advances the simulation.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.sim.Step()
	}
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Simulation { return g.sim }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.sim.Tick() }

// Unload releases the simulation's worker pool and output files.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close simulation", "error", err)
	}
}
