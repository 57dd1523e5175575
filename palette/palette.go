// Package palette maps scalar particle values onto colour gradients.
package palette

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mazznoer/colorgrad"
)

// Size is the number of precomputed colours per palette.
const Size = 256

// Palette is a precomputed colour lookup table.
type Palette struct {
	name   string
	colors []color.RGBA
}

// Names lists the accepted gradient names.
var Names = []string{"hue", "turbo", "viridis", "plasma"}

// New builds the palette for a gradient name. An empty name selects "hue",
// which runs from hue 200 (slow) to hue 20 (fast).
func New(name string) (*Palette, error) {
	if name == "" {
		name = "hue"
	}
	grad, err := gradient(name)
	if err != nil {
		return nil, err
	}

	p := &Palette{name: name, colors: make([]color.RGBA, 0, Size)}
	for i := 0; i < Size; i++ {
		r, g, b := grad.At(float64(i) / (Size - 1)).RGB255()
		p.colors = append(p.colors, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return p, nil
}

func gradient(name string) (colorgrad.Gradient, error) {
	switch name {
	case "hue":
		return colorgrad.NewGradient().
			HtmlColors("hsl(200, 80%, 55%)", "hsl(140, 70%, 50%)", "hsl(80, 80%, 50%)", "hsl(20, 90%, 55%)").
			Build()
	case "turbo":
		return colorgrad.Turbo(), nil
	case "viridis":
		return colorgrad.Viridis(), nil
	case "plasma":
		return colorgrad.Plasma(), nil
	}
	var none colorgrad.Gradient
	return none, fmt.Errorf("unknown gradient %q (want one of %v)", name, Names)
}

// Name returns the gradient name.
func (p *Palette) Name() string { return p.name }

// At returns the colour at t in [0, 1]. Out of range values clamp and NaN
// maps to the cold end.
func (p *Palette) At(t float32) color.RGBA {
	if t != t || t <= 0 {
		return p.colors[0]
	}
	if t >= 1 {
		return p.colors[len(p.colors)-1]
	}
	return p.colors[int(t*float32(len(p.colors)-1)+0.5)]
}

// Speed colours a velocity by speed² relative to maxSpeed².
func (p *Palette) Speed(vel mgl32.Vec3, maxSpeed float32) color.RGBA {
	if maxSpeed <= 0 {
		return p.colors[0]
	}
	return p.At(vel.LenSqr() / (maxSpeed * maxSpeed))
}

// Density colours a density so that target sits mid-gradient.
func (p *Palette) Density(density, target float32) color.RGBA {
	if target <= 0 {
		return p.colors[0]
	}
	return p.At(density / (2 * target))
}

// Valid reports whether name is a known gradient.
func Valid(name string) bool {
	if name == "" {
		return true
	}
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
