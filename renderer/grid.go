package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/camera"
	"github.com/pthm-cable/sph/fluid"
)

// Hash grid overlay colours
var (
	ColorGridCell     = rl.Color{R: 90, G: 90, B: 110, A: 160}
	ColorGridBucket   = rl.Color{R: 160, G: 160, B: 160, A: 200}
	ColorGridNeighbor = rl.Color{R: 255, G: 220, B: 60, A: 255}
	ColorGridRadius   = rl.Color{R: 255, G: 220, B: 60, A: 120}
)

// HashGridOverlay shows how the spatial index answers a query at a point:
// the 3x3 block of cells searched, every bucket entry scanned (including
// hash collisions from distant cells), and the neighbours inside radius.
type HashGridOverlay struct {
	neighbors []uint32
}

// Draw2D renders the overlay for a query at the world point at.
func (h *HashGridOverlay) Draw2D(idx *fluid.SpatialIndex, positions []mgl32.Vec3, at mgl32.Vec3, radius float32, cam *camera.Camera) {
	cs := idx.CellSize()
	if cs <= 0 || idx.Len() != len(positions) {
		return
	}

	center := idx.CellOf(at)
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			x0 := float32(center[0]+dx) * cs
			y0 := float32(center[1]+dy) * cs
			sx, sy := cam.WorldToScreen(x0, y0+cs)
			w := cam.WorldLength(cs)
			rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: w, Height: w}, 1, ColorGridCell)
		}
	}

	dot := cam.WorldLength(cs) * 0.05
	if dot < 2 {
		dot = 2
	}

	var keys [27]uint32
	for _, key := range idx.NeighborKeys(at, &keys) {
		for _, e := range idx.Bucket(key) {
			p := positions[e.Index]
			sx, sy := cam.WorldToScreen(p[0], p[1])
			rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, dot, ColorGridBucket)
		}
	}

	h.neighbors = idx.QueryRadiusInto(h.neighbors[:0], at, positions, radius)
	for _, i := range h.neighbors {
		p := positions[i]
		sx, sy := cam.WorldToScreen(p[0], p[1])
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, dot, ColorGridNeighbor)
	}

	cx, cy := cam.WorldToScreen(at[0], at[1])
	rl.DrawCircleLinesV(rl.Vector2{X: cx, Y: cy}, cam.WorldLength(radius), ColorGridRadius)
}

// Neighbors returns the neighbour count from the last Draw2D.
func (h *HashGridOverlay) Neighbors() int { return len(h.neighbors) }
