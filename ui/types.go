// Package ui draws the fluid HUD: diagnostics and perf panels built from
// field descriptors, the overlay registry and its controls list.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType selects how a field is drawn.
type WidgetType int

const (
	WidgetText WidgetType = iota
	WidgetBar
	WidgetSection
	WidgetSpacer
)

// FieldRange is the span a bar widget fills.
type FieldRange struct {
	Min, Max float32
}

// DefaultRange is [0, 1].
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// Norm maps v into [0, 1] over the range. An empty range maps to 0.
func (r FieldRange) Norm(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	t := (v - r.Min) / (r.Max - r.Min)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// FieldDescriptor is one HUD line. Getter feeds numbers through Format,
// TextGetter wins when set, and a nil Visible means always shown. The data
// passed to the getters is whatever the panel draws, usually sim.Diagnostics.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string
	Range      FieldRange
	Visible    func(any) bool
	Getter     func(any) float32
	TextGetter func(any) string
}

// SectionDescriptor is a titled run of fields.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor lays out a whole panel. An empty Title draws no header.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
}

// Theme holds panel colours and metrics.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme is the dark HUD theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 80, G: 150, B: 220, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     110,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
