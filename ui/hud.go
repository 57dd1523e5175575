package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/sim"
	"github.com/pthm-cable/sph/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Diag          sim.Diagnostics
	StepsPerFrame int
	FPS           int32
	Paused        bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	diag     PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		diag:     diagnosticsPanel(),
	}
}

// Draw renders the title block in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("%dD | Particles: %d | Layout: %s", data.Diag.Dim, data.Diag.Particles, data.Diag.Layout),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Steps/frame: %d | FPS: %d", data.Diag.Tick, data.StepsPerFrame, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawDiagnostics renders the solver diagnostics panel at (x, y) and
// returns its height.
func (h *HUD) DrawDiagnostics(x, y int32, diag sim.Diagnostics) int32 {
	return h.renderer.DrawPanelDescriptor(x, y, h.diag, diag)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func diag(data any) sim.Diagnostics {
	d, _ := data.(sim.Diagnostics)
	return d
}

func diagnosticsPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:    "diagnostics",
		Title: "Fluid",
		Width: 260,
		Sections: []SectionDescriptor{
			{
				ID:    "pressure",
				Title: "Pressure",
				Fields: []FieldDescriptor{
					{ID: "pressure", Label: "Pressure [Q/W]", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return diag(d).PressureScalar }},
					{ID: "near_pressure", Label: "Near [A/S]", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return diag(d).NearPressureScalar }},
				},
			},
			{
				ID:    "density",
				Title: "Density",
				Fields: []FieldDescriptor{
					{ID: "target_density", Label: "Target [Z/X]", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return diag(d).TargetDensity }},
					{ID: "smoothing_radius", Label: "Radius [1/2]", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return diag(d).SmoothingRadius }},
				},
			},
			{
				ID:    "forces",
				Title: "Forces",
				Fields: []FieldDescriptor{
					{ID: "viscosity", Label: "Viscosity", Widget: WidgetBar, Range: DefaultRange(), Format: "%.2f",
						Getter: func(d any) float32 { return diag(d).ViscosityStrength }},
					{ID: "gravity", Label: "Gravity [3/4]", Widget: WidgetText,
						TextGetter: func(d any) string {
							g := diag(d)
							if !g.GravityOn {
								return fmt.Sprintf("%.1f (off)", g.Gravity)
							}
							return fmt.Sprintf("%.1f", g.Gravity)
						}},
				},
			},
		},
	}
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height.
func (p *PerfPanel) Height() int32 {
	return int32(20+16+16+16) + int32(len(telemetry.Phases))*14 + 2*p.renderer.Theme.Padding
}

// Draw renders the performance panel in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	const width = 280
	p.renderer.DrawPanel(p.x, p.y, width, p.Height())

	x := p.x + p.renderer.Theme.Padding
	y := p.y + p.renderer.Theme.Padding

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %.0fus (%.0f-%.0f)", stats.AvgTickDuration.Seconds()*1e6,
		stats.MinTickDuration.Seconds()*1e6, stats.MaxTickDuration.Seconds()*1e6), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("%.0f ticks/s | %.0f fps", stats.TicksPerSecond, stats.FPS), x, y, 14, rl.LightGray)
	y += 16
	rl.DrawText(fmt.Sprintf("%.0f ns/particle | %.2fM particles/s", stats.NsPerParticle, stats.ParticlesPerSec/1e6), x, y, 14, rl.LightGray)
	y += 16

	for _, name := range telemetry.Phases {
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8.0fus %5.1f%%", name, stats.PhaseAvg[name].Seconds()*1e6, pct),
			x, y, 12, color,
		)
		y += 14
	}
}
