package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/camera"
	"github.com/pthm-cable/sph/container"
)

// DrawContainer2D outlines the container, and when padding > 0 the inner
// bounds particle centres are clamped to.
func DrawContainer2D(c container.Container, cam *camera.Camera, padding float32, color, padColor rl.Color) {
	min, max := c.Extents()
	drawRect2D(cam, min, max, color)
	if padding > 0 {
		pmin, pmax := c.ExtentsPadded(padding)
		drawRect2D(cam, pmin, pmax, padColor)
	}
}

func drawRect2D(cam *camera.Camera, min, max mgl32.Vec3, color rl.Color) {
	x0, y0 := cam.WorldToScreen(min[0], max[1])
	x1, y1 := cam.WorldToScreen(max[0], min[1])
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, color)
}

// DrawContainer3D draws the oriented box edges inside BeginMode3D. With
// padding > 0 it also draws the padded collision box.
func DrawContainer3D(c container.Container, padding float32, color, padColor rl.Color) {
	drawBox3D(c.Corners(), color)
	if padding > 0 {
		inner := c
		inner.Size = c.Size.Sub(mgl32.Vec3{2 * padding, 2 * padding, 2 * padding})
		drawBox3D(inner.Corners(), padColor)
	}
}

func drawBox3D(corners [8]mgl32.Vec3, color rl.Color) {
	for _, e := range container.Edges {
		a, b := corners[e[0]], corners[e[1]]
		rl.DrawLine3D(rl.NewVector3(a[0], a[1], a[2]), rl.NewVector3(b[0], b[1], b[2]), color)
	}
}
