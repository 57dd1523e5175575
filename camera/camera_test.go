package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestNew(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 100 {
		t.Errorf("expected zoom 100, got %f", cam.Zoom)
	}
	if cam.MinZoom != 12.5 || cam.MaxZoom != 800 {
		t.Errorf("zoom range = [%f, %f], want [12.5, 800]", cam.MinZoom, cam.MaxZoom)
	}
}

func TestWorldToScreenYUp(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"center", 0, 0, 640, 400},
		{"right", 1, 0, 740, 400},
		{"up is screen up", 0, 1, 640, 300},
		{"down is screen down", 0, -2, 640, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)
	cam.X, cam.Y = 1.5, -0.5
	cam.Zoom = 73

	testCases := []struct{ sx, sy float32 }{
		{640, 400},
		{100, 100},
		{1200, 700},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToBounds(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)

	cam.Pan(100, 0)
	if !near(cam.X, 1) {
		t.Errorf("pan right by 100px at zoom 100: X = %f, want 1", cam.X)
	}
	cam.Pan(0, 100)
	if !near(cam.Y, -1) {
		t.Errorf("pan down by 100px: Y = %f, want -1", cam.Y)
	}

	cam.Pan(1e6, -1e6)
	if cam.X != 4 || cam.Y != 3 {
		t.Errorf("pan should clamp to bounds, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)

	cam.SetZoom(1e6)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)
	sx, sy := float32(900), float32(250)
	wx, wy := cam.ScreenToWorld(sx, sy)

	cam.ZoomAt(sx, sy, 2)

	gx, gy := cam.WorldToScreen(wx, wy)
	if !near(gx, sx) || !near(gy, sy) {
		t.Errorf("point under cursor moved to (%f, %f), want (%f, %f)", gx, gy, sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)

	if !cam.IsVisible(0, 0, 0.1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(10, 0, 0.1) {
		t.Error("point far outside viewport should not be visible")
	}
	// Visible half width is 6.4 units; radius extends the check.
	if !cam.IsVisible(6.5, 0, 0.2) {
		t.Error("circle overlapping the edge should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)
	cam.Pan(50, 50)
	cam.ZoomBy(3)
	cam.Reset()

	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 100 {
		t.Errorf("Reset: got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 800, -4, -3, 4, 3, 100)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, -6.4) || !near(maxX, 6.4) || !near(minY, -4) || !near(maxY, 4) {
		t.Errorf("bounds = (%f, %f, %f, %f)", minX, minY, maxX, maxY)
	}
}
