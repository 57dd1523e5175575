package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/fluid"
)

// SliderSpec describes one parameter slider.
type SliderSpec struct {
	Param  string
	Label  string
	Min    float32
	Max    float32
	Format string
}

// Edit is a slider change the caller should apply.
type Edit struct {
	Param string
	Value float32
}

// Action is a button press on the parameter panel.
type Action int

const (
	ActionNone Action = iota
	ActionResetGrid
	ActionResetRandom
	ActionToggleGravity
)

// DefaultSliders builds slider ranges around the starting parameters.
func DefaultSliders(p fluid.Params) []SliderSpec {
	span := func(v float32) float32 {
		if v <= 0 {
			return 1
		}
		return v * 3
	}
	return []SliderSpec{
		{Param: fluid.ParamSmoothingRadius, Label: "Smoothing radius", Min: p.Radius, Max: span(p.SmoothingRadius), Format: "%.3f"},
		{Param: fluid.ParamTargetDensity, Label: "Target density", Min: 0.1, Max: span(p.TargetDensity), Format: "%.2f"},
		{Param: fluid.ParamPressureScalar, Label: "Pressure", Min: 0, Max: span(p.PressureScalar), Format: "%.1f"},
		{Param: fluid.ParamNearPressureScalar, Label: "Near pressure", Min: 0, Max: span(p.NearPressureScalar), Format: "%.2f"},
		{Param: fluid.ParamViscosityStrength, Label: "Viscosity", Min: 0, Max: 1, Format: "%.3f"},
		{Param: fluid.ParamCollisionDamping, Label: "Collision damping", Min: 0, Max: 1, Format: "%.2f"},
	}
}

// ParamPanel draws raygui sliders for the solver parameters.
type ParamPanel struct {
	renderer *Renderer
	sliders  []SliderSpec
	x, y     int32
	width    int32
}

// NewParamPanel creates a slider panel.
func NewParamPanel(x, y, width int32, sliders []SliderSpec) *ParamPanel {
	return &ParamPanel{
		renderer: NewRenderer(),
		sliders:  sliders,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *ParamPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height.
func (p *ParamPanel) Height() int32 {
	return int32(len(p.sliders))*40 + 30 + 45 + 2*p.renderer.Theme.Padding
}

// Contains reports whether a screen point lies on the panel.
func (p *ParamPanel) Contains(mx, my float32) bool {
	return int32(mx) >= p.x && int32(mx) <= p.x+p.width &&
		int32(my) >= p.y && int32(my) <= p.y+p.Height()
}

// Draw renders the sliders using get for the current values and returns the
// edits made this frame plus any button action.
func (p *ParamPanel) Draw(get func(string) float32, gravityOn bool) ([]Edit, Action) {
	pad := p.renderer.Theme.Padding
	p.renderer.DrawPanel(p.x, p.y, p.width, p.Height())

	x := float32(p.x + pad)
	y := float32(p.y + pad)
	w := float32(p.width - 2*pad)

	rl.DrawText("Parameters", int32(x), int32(y), 16, rl.White)
	y += 30

	var edits []Edit
	for _, s := range p.sliders {
		cur := get(s.Param)
		rl.DrawText(s.Label, int32(x), int32(y), 12, rl.LightGray)
		rl.DrawText(fmt.Sprintf(s.Format, cur), int32(x+w-60), int32(y), 12, rl.RayWhite)
		y += 16

		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: w, Height: 16},
			"", "",
			cur, s.Min, s.Max,
		)
		if v != cur {
			edits = append(edits, Edit{Param: s.Param, Value: v})
		}
		y += 24
	}

	action := ActionNone
	bw := (w - 20) / 3
	if gui.Button(rl.Rectangle{X: x, Y: y + 5, Width: bw, Height: 28}, "Reset grid") {
		action = ActionResetGrid
	}
	if gui.Button(rl.Rectangle{X: x + bw + 10, Y: y + 5, Width: bw, Height: 28}, "Reset random") {
		action = ActionResetRandom
	}
	if gui.Button(rl.Rectangle{X: x + 2*(bw+10), Y: y + 5, Width: bw, Height: 28}, toggleText(gravityOn, "Gravity off", "Gravity on")) {
		action = ActionToggleGravity
	}

	return edits, action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
