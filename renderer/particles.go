// Package renderer draws the fluid with raylib in 2D (through a
// camera.Camera) or 3D (inside BeginMode3D).
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/camera"
	"github.com/pthm-cable/sph/fluid"
	"github.com/pthm-cable/sph/palette"
)

// ColorMode selects the scalar that drives particle colour.
type ColorMode int

const (
	ColorSpeed ColorMode = iota
	ColorDensity
	ColorFlat
)

// ParticleRenderer draws particles coloured through a palette.
type ParticleRenderer struct {
	palette       *palette.Palette
	maxColorSpeed float32
	flat          rl.Color
}

// NewParticleRenderer creates a particle renderer.
func NewParticleRenderer(pal *palette.Palette, maxColorSpeed float32) *ParticleRenderer {
	return &ParticleRenderer{
		palette:       pal,
		maxColorSpeed: maxColorSpeed,
		flat:          rl.Color{R: 70, G: 150, B: 230, A: 255},
	}
}

func (r *ParticleRenderer) color(p *fluid.Particles, i int, mode ColorMode, targetDensity float32) rl.Color {
	var c = r.flat
	switch mode {
	case ColorSpeed:
		rgba := r.palette.Speed(p.Velocity[i], r.maxColorSpeed)
		c = rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
	case ColorDensity:
		rgba := r.palette.Density(p.Density[i], targetDensity)
		c = rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
	}
	return c
}

// Draw2D renders every visible particle as a filled circle.
func (r *ParticleRenderer) Draw2D(p *fluid.Particles, cam *camera.Camera, radius float32, mode ColorMode, targetDensity float32) {
	px := cam.WorldLength(radius)
	if px < 1 {
		px = 1
	}
	for i, pos := range p.Position {
		if !cam.IsVisible(pos[0], pos[1], radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(pos[0], pos[1])
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, px, r.color(p, i, mode, targetDensity))
	}
}

// Draw3D renders every particle as a low-poly sphere. Call between
// rl.BeginMode3D and rl.EndMode3D.
func (r *ParticleRenderer) Draw3D(p *fluid.Particles, radius float32, mode ColorMode, targetDensity float32) {
	for i, pos := range p.Position {
		rl.DrawSphereEx(rl.NewVector3(pos[0], pos[1], pos[2]), radius, 4, 6, r.color(p, i, mode, targetDensity))
	}
}

// DrawVelocity2D draws a line per particle along its velocity scaled by
// scale seconds.
func DrawVelocity2D(p *fluid.Particles, cam *camera.Camera, scale float32, color rl.Color) {
	for i, pos := range p.Position {
		if !cam.IsVisible(pos[0], pos[1], 0) {
			continue
		}
		end := pos.Add(p.Velocity[i].Mul(scale))
		x0, y0 := cam.WorldToScreen(pos[0], pos[1])
		x1, y1 := cam.WorldToScreen(end[0], end[1])
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, color)
	}
}

// DrawVelocity3D is DrawVelocity2D inside BeginMode3D.
func DrawVelocity3D(p *fluid.Particles, scale float32, color rl.Color) {
	for i, pos := range p.Position {
		end := pos.Add(p.Velocity[i].Mul(scale))
		rl.DrawLine3D(rl.NewVector3(pos[0], pos[1], pos[2]), rl.NewVector3(end[0], end[1], end[2]), color)
	}
}
