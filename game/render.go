package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/renderer"
	"github.com/pthm-cable/sph/ui"
)

// Scene colours
var (
	ColorBackground = rl.Color{R: 12, G: 14, B: 20, A: 255}
	ColorContainer  = rl.Color{R: 200, G: 200, B: 210, A: 255}
	ColorPadded     = rl.Color{R: 120, G: 200, B: 120, A: 160}
	ColorVelocity   = rl.Color{R: 255, G: 255, B: 255, A: 90}
	ColorCursorPull = rl.Color{R: 120, G: 200, B: 255, A: 180}
	ColorCursorPush = rl.Color{R: 255, G: 120, B: 90, A: 180}
	ColorSelection  = rl.Yellow
)

// velocityScale is the time in seconds each velocity vector spans.
const velocityScale = 0.1

const controlsLegend = "[P] pause  [Space/G/N] reset  [T] gravity  [1/2 3/4 Q/W A/S Z/X] params  [LMB/RMB] pull/push  [I] inspect  [,/.] speed  [F1] overlays"

// Draw renders the frame.
func (g *Game) Draw() {
	g.sim.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(ColorBackground)

	if g.dim == 3 {
		g.drawScene3D()
	} else {
		g.drawScene2D()
	}
	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) colorMode() renderer.ColorMode {
	switch {
	case g.overlays.IsEnabled(ui.OverlaySpeedColors):
		return renderer.ColorSpeed
	case g.overlays.IsEnabled(ui.OverlayDensityColors):
		return renderer.ColorDensity
	}
	return renderer.ColorFlat
}

func (g *Game) boundsPadding() float32 {
	if g.overlays.IsEnabled(ui.OverlayBounds) {
		return g.sim.Params().Radius
	}
	return 0
}

func (g *Game) drawScene2D() {
	p := g.sim.Particles()
	params := g.sim.Params()

	renderer.DrawContainer2D(g.sim.Container(), g.camera, g.boundsPadding(), ColorContainer, ColorPadded)
	g.particles.Draw2D(p, g.camera, params.Radius, g.colorMode(), params.TargetDensity)

	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		renderer.DrawVelocity2D(p, g.camera, velocityScale, ColorVelocity)
	}
	if g.overlays.IsEnabled(ui.OverlayHashGrid) && g.mouseValid {
		g.hashGrid.Draw2D(g.sim.SpatialIndex(), p.Position, g.mouseWorld, params.SmoothingRadius, g.camera)
	}

	if c := g.sim.Cursor(); c != nil {
		sx, sy := g.camera.WorldToScreen(c.Position[0], c.Position[1])
		color := ColorCursorPull
		if c.Strength < 0 {
			color = ColorCursorPush
		}
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, g.camera.WorldLength(c.Radius), color)
	}

	if pos, ok := g.selectedPosition(); ok {
		sx, sy := g.camera.WorldToScreen(pos[0], pos[1])
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, g.camera.WorldLength(params.Radius*2.5)+2, ColorSelection)
	}
}

func (g *Game) camera3D() rl.Camera3D {
	eye, target, up := g.orbit.Eye(), g.orbit.Target, g.orbit.Up()
	return rl.Camera3D{
		Position:   rl.NewVector3(eye[0], eye[1], eye[2]),
		Target:     rl.NewVector3(target[0], target[1], target[2]),
		Up:         rl.NewVector3(up[0], up[1], up[2]),
		Fovy:       g.orbit.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func (g *Game) drawScene3D() {
	p := g.sim.Particles()
	params := g.sim.Params()

	rl.BeginMode3D(g.camera3D())

	renderer.DrawContainer3D(g.sim.Container(), g.boundsPadding(), ColorContainer, ColorPadded)
	g.particles.Draw3D(p, params.Radius, g.colorMode(), params.TargetDensity)

	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		renderer.DrawVelocity3D(p, velocityScale, ColorVelocity)
	}

	if c := g.sim.Cursor(); c != nil {
		color := ColorCursorPull
		if c.Strength < 0 {
			color = ColorCursorPush
		}
		rl.DrawSphereWires(vec3(c.Position), c.Radius, 8, 12, color)
	}

	if pos, ok := g.selectedPosition(); ok {
		rl.DrawSphereWires(vec3(pos), params.Radius*2.5, 4, 8, ColorSelection)
	}

	rl.EndMode3D()
}

func vec3(v mgl32.Vec3) rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }

// selectedPosition returns the inspected particle's position, if any.
func (g *Game) selectedPosition() (mgl32.Vec3, bool) {
	e, ok := g.inspector.Selected()
	if !ok || !g.sim.World().Alive(e) {
		return mgl32.Vec3{}, false
	}
	pos, _, _, _ := g.sim.Mapper().Get(e)
	return pos.Vec(), true
}

// drawUI stacks the HUD panels down the left edge and the inspector on the
// right.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:         "SPH Fluid",
		Diag:          g.sim.Diagnostics(),
		StepsPerFrame: g.stepsPerUpdate,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
	})

	const gap = 8
	x, y := int32(10), int32(100)

	if g.cfg.Render.ShowPanel {
		y += g.hud.DrawDiagnostics(x, y, g.sim.Diagnostics()) + gap
	}

	if g.overlays.IsEnabled(ui.OverlaySliders) {
		g.params.SetPosition(x, y)
		edits, action := g.params.Draw(g.paramValue, g.sim.GravityEnabled())
		g.applyPanelEdits(edits, action)
		y += g.params.Height() + gap
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(x, y)
		g.perfPanel.Draw(g.sim.PerfStats())
		y += g.perfPanel.Height() + gap
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.controls.SetPosition(x, y)
		g.controls.Draw(g.overlays)
	}

	if g.overlays.IsEnabled(ui.OverlayHashGrid) && g.dim == 2 {
		rl.DrawText(
			fmt.Sprintf("neighbours: %d", g.hashGrid.Neighbors()),
			int32(g.screenWidth)-160, int32(g.screenHeight)-50, 14, renderer.ColorGridNeighbor,
		)
	}

	g.inspector.Draw(g.sim.World(), g.sim.Mapper(), g.dim)

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)
}

func (g *Game) paramValue(name string) float32 {
	v, _ := g.sim.Param(name)
	return v
}
