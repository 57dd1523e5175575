package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/fluid"
	"github.com/pthm-cable/sph/sim"
	"github.com/pthm-cable/sph/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.stepsPerUpdate + 1)
	}

	// Overlay toggles come from the registry.
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.ToggleKey(key)
	}

	g.handleResetKeys()
	g.handleParamKeys()
	g.handleCameraInput()
	g.updateMouseWorld()
	g.handleCursor()
	g.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
	g.inspector.Resize(int32(w), int32(h))
}

func (g *Game) handleResetKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		g.sim.Reset(g.sim.Layout())
	case rl.IsKeyPressed(rl.KeyG):
		g.sim.Reset(fluid.LayoutGrid)
	case rl.IsKeyPressed(rl.KeyN):
		g.sim.Reset(fluid.LayoutRandom)
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.sim.ToggleGravity()
	}
}

// paramKey binds a decrement and increment key to a named parameter.
type paramKey struct {
	down, up int32
	param    string
	step     float64
}

func (g *Game) handleParamKeys() {
	c := g.cfg.Controls
	bindings := []paramKey{
		{rl.KeyOne, rl.KeyTwo, fluid.ParamSmoothingRadius, c.SmoothingRadiusStep},
		{rl.KeyThree, rl.KeyFour, sim.ParamGravity, c.GravityStep},
		{rl.KeyQ, rl.KeyW, fluid.ParamPressureScalar, c.PressureStep},
		{rl.KeyA, rl.KeyS, fluid.ParamNearPressureScalar, c.NearPressureStep},
		{rl.KeyZ, rl.KeyX, fluid.ParamTargetDensity, c.TargetDensityStep},
	}
	for _, b := range bindings {
		var delta float32
		if rl.IsKeyPressed(b.down) {
			delta -= float32(b.step)
		}
		if rl.IsKeyPressed(b.up) {
			delta += float32(b.step)
		}
		if delta == 0 {
			continue
		}
		// Steps past a constraint are ignored.
		_, _ = g.sim.NudgeParam(b.param, delta)
	}
}

// applyPanelEdits forwards slider edits and button actions to the simulation.
func (g *Game) applyPanelEdits(edits []ui.Edit, action ui.Action) {
	for _, e := range edits {
		// Rejections are logged by the simulation.
		_ = g.sim.SetParam(e.Param, e.Value)
	}
	switch action {
	case ui.ActionResetGrid:
		g.sim.Reset(fluid.LayoutGrid)
	case ui.ActionResetRandom:
		g.sim.Reset(fluid.LayoutRandom)
	case ui.ActionToggleGravity:
		g.sim.ToggleGravity()
	}
}

// handleCameraInput pans/zooms the 2D camera, or orbits the 3D camera and
// rotates the container.
func (g *Game) handleCameraInput() {
	wheel := rl.GetMouseWheelMove()
	mouse := rl.GetMousePosition()

	if g.dim == 3 {
		if wheel != 0 {
			g.orbit.ZoomBy(1 - wheel*0.1)
		}
		if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
			d := rl.GetMouseDelta()
			g.orbit.Turn(-d.X*0.005, d.Y*0.005)
		}

		angle := mgl32.DegToRad(float32(g.cfg.Mode().Container.RotateSpeed)) * rl.GetFrameTime()
		if rl.IsKeyDown(rl.KeyLeft) {
			g.sim.RotateContainer(mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1}))
		}
		if rl.IsKeyDown(rl.KeyRight) {
			g.sim.RotateContainer(mgl32.QuatRotate(-angle, mgl32.Vec3{0, 0, 1}))
		}
		if rl.IsKeyDown(rl.KeyUp) {
			g.sim.RotateContainer(mgl32.QuatRotate(-angle, mgl32.Vec3{1, 0, 0}))
		}
		if rl.IsKeyDown(rl.KeyDown) {
			g.sim.RotateContainer(mgl32.QuatRotate(angle, mgl32.Vec3{1, 0, 0}))
		}

		if rl.IsKeyPressed(rl.KeyHome) {
			g.orbit.Reset()
			g.sim.ResetContainer()
		}
		return
	}

	// Pan speed in pixels
	const panSpeed = 8
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	if wheel != 0 {
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// updateMouseWorld projects the mouse into the simulation: onto the z = 0
// plane in 2D, or onto the camera-facing plane through the container centre
// in 3D.
func (g *Game) updateMouseWorld() {
	mouse := rl.GetMousePosition()
	if g.dim == 3 {
		box := g.sim.Container()
		normal := g.orbit.Eye().Sub(g.orbit.Target).Normalize()
		g.mouseWorld, g.mouseValid = g.orbit.PlaneHit(mouse.X, mouse.Y, g.screenWidth, g.screenHeight, box.Position, normal)
		return
	}
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.mouseWorld = mgl32.Vec3{wx, wy, 0}
	g.mouseValid = true
}

// overUI reports whether the mouse is on an open panel.
func (g *Game) overUI() bool {
	mouse := rl.GetMousePosition()
	if g.inspector.Contains(mouse.X, mouse.Y) {
		return true
	}
	if g.overlays.IsEnabled(ui.OverlayControls) && g.controls.Contains(mouse.X, mouse.Y) {
		return true
	}
	return g.overlays.IsEnabled(ui.OverlaySliders) && g.params.Contains(mouse.X, mouse.Y)
}

// handleCursor turns held mouse buttons into a cursor force: left pulls,
// right pushes.
func (g *Game) handleCursor() {
	if !g.mouseValid || g.overUI() {
		g.sim.ClearCursor()
		return
	}
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		g.sim.SetCursor(g.mouseWorld, 1)
	case rl.IsMouseButtonDown(rl.MouseButtonRight):
		g.sim.SetCursor(g.mouseWorld, -1)
	default:
		g.sim.ClearCursor()
	}
}

// handleSelection pins the particle nearest the mouse in the inspector (I),
// and closes it with Escape or the close button.
func (g *Game) handleSelection() {
	mouse := rl.GetMousePosition()
	if rl.IsKeyPressed(rl.KeyEscape) ||
		(rl.IsMouseButtonPressed(rl.MouseButtonLeft) && g.inspector.HitClose(mouse.X, mouse.Y)) {
		g.inspector.Deselect()
		return
	}
	if !rl.IsKeyPressed(rl.KeyI) || !g.mouseValid {
		return
	}
	i := g.sim.Particles().Nearest(g.mouseWorld)
	if e, ok := g.sim.Entity(i); ok {
		g.inspector.Select(e)
	}
}
