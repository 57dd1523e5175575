package palette

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNew(t *testing.T) {
	for _, name := range append([]string{""}, Names...) {
		t.Run(name, func(t *testing.T) {
			p, err := New(name)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			if len(p.colors) != Size {
				t.Errorf("colors = %d, want %d", len(p.colors), Size)
			}
			if p.At(0) == p.At(1) {
				t.Error("gradient ends should differ")
			}
			for i, c := range p.colors {
				if c.A != 255 {
					t.Fatalf("color %d alpha = %d", i, c.A)
				}
			}
		})
	}

	if _, err := New("sepia"); err == nil {
		t.Error("unknown gradient should fail")
	}
	if !Valid("") || !Valid("turbo") || Valid("sepia") {
		t.Error("Valid disagrees with Names")
	}
}

func TestAtClamps(t *testing.T) {
	p, err := New("turbo")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		t    float32
		want int
	}{
		{"negative", -2, 0},
		{"zero", 0, 0},
		{"nan", float32(math.NaN()), 0},
		{"one", 1, Size - 1},
		{"above", 7, Size - 1},
		{"middle", 0.5, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.At(tt.t); got != p.colors[tt.want] {
				t.Errorf("At(%v) = %v, want colors[%d] = %v", tt.t, got, tt.want, p.colors[tt.want])
			}
		})
	}
}

func TestSpeedAndDensity(t *testing.T) {
	p, err := New("hue")
	if err != nil {
		t.Fatal(err)
	}

	if p.Speed(mgl32.Vec3{}, 4) != p.At(0) {
		t.Error("resting particle should use the cold end")
	}
	if p.Speed(mgl32.Vec3{0, 4, 0}, 4) != p.At(1) {
		t.Error("particle at max speed should use the hot end")
	}
	// speed 2 of max 4 is a quarter of the way along in speed².
	if p.Speed(mgl32.Vec3{2, 0, 0}, 4) != p.At(0.25) {
		t.Error("speed should map through speed²")
	}
	if p.Speed(mgl32.Vec3{1, 0, 0}, 0) != p.At(0) {
		t.Error("zero max speed should not divide by zero")
	}

	if p.Density(10, 10) != p.At(0.5) {
		t.Error("target density should sit mid-gradient")
	}
	if p.Density(5, 0) != p.At(0) {
		t.Error("zero target should use the cold end")
	}
}

func TestEveryNameSamplesGradientEnds(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			p, err := New(name)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			grad, err := gradient(name)
			if err != nil {
				t.Fatalf("gradient(%q): %v", name, err)
			}

			ends := []struct {
				idx int
				t   float64
			}{
				{0, 0},
				{Size - 1, 1},
			}
			for _, e := range ends {
				r, g, b := grad.At(e.t).RGB255()
				want := color.RGBA{R: r, G: g, B: b, A: 255}
				if p.colors[e.idx] != want {
					t.Errorf("colors[%d] = %v, want %v", e.idx, p.colors[e.idx], want)
				}
			}
		})
	}
}
