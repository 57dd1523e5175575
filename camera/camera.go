// Package camera provides a 2D camera system for viewport control.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera controls the viewport into the simulation world.
// World space is y-up and measured in simulation units; screen space is
// y-down pixels. Zoom is pixels per world unit.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level in pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Bounds the camera center is kept inside
	MinX, MinY, MaxX, MaxY float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	home     mgl32.Vec2
	homeZoom float32
}

// New creates a camera centered on the given world bounds at the given zoom.
// The zoom range spans 1/8x to 8x of the initial zoom.
func New(viewportW, viewportH float32, minX, minY, maxX, maxY, zoom float32) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	c := &Camera{
		X:         (minX + maxX) / 2,
		Y:         (minY + maxY) / 2,
		Zoom:      zoom,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinX:      minX,
		MinY:      minY,
		MaxX:      maxX,
		MaxY:      maxY,
		MinZoom:   zoom / 8,
		MaxZoom:   zoom * 8,
	}
	c.home = mgl32.Vec2{c.X, c.Y}
	c.homeZoom = zoom
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// WorldLength converts a world distance to pixels.
func (c *Camera) WorldLength(d float32) float32 {
	return d * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels. The center stays
// inside the world bounds.
func (c *Camera) Pan(dx, dy float32) {
	c.X = mgl32.Clamp(c.X+dx/c.Zoom, c.MinX, c.MaxX)
	c.Y = mgl32.Clamp(c.Y-dy/c.Zoom, c.MinY, c.MaxY)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = mgl32.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = mgl32.Clamp(c.X+wx-nx, c.MinX, c.MaxX)
	c.Y = mgl32.Clamp(c.Y+wy-ny, c.MinY, c.MaxY)
}

// Reset returns the camera to the initial position and zoom.
func (c *Camera) Reset() {
	c.X, c.Y = c.home.X(), c.home.Y()
	c.Zoom = c.homeZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
