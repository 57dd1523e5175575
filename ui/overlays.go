package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable layer of the fluid view.
type OverlayID string

const (
	OverlaySpeedColors   OverlayID = "speed_colors"
	OverlayDensityColors OverlayID = "density_colors"
	OverlayVelocity      OverlayID = "velocity_vectors"
	OverlayHashGrid      OverlayID = "hash_grid"
	OverlayBounds        OverlayID = "bounds"
	OverlaySliders       OverlayID = "sliders"
	OverlayPerf          OverlayID = "perf"
	OverlayControls      OverlayID = "controls"
)

// Overlay categories, in the order the controls panel lists them.
const (
	CategoryColour = "Colour"
	CategoryDebug  = "Debug"
	CategoryPanels = "Panels"
)

// OverlayDescriptor is one row of the controls panel. Key 0 means the
// overlay has no hotkey. Enabling it switches off everything in Excludes.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32
	KeyLabel    string
	Category    string
	Excludes    []OverlayID
	On          bool
}

// fluidOverlays is the stock set: one colouring mode at a time, debug
// layers over the particles and the three HUD panels.
var fluidOverlays = []OverlayDescriptor{
	{OverlaySpeedColors, "Speed", "Colour particles by speed squared", rl.KeyC, "C", CategoryColour, []OverlayID{OverlayDensityColors}, true},
	{OverlayDensityColors, "Density", "Colour particles by density against the target", rl.KeyD, "D", CategoryColour, []OverlayID{OverlaySpeedColors}, false},
	{OverlayVelocity, "Velocity", "Draw a velocity vector per particle", rl.KeyV, "V", CategoryDebug, nil, false},
	{OverlayHashGrid, "Hash grid", "Spatial hash cells around the cursor (2D)", rl.KeyH, "H", CategoryDebug, nil, false},
	{OverlayBounds, "Bounds", "Container walls padded by the particle radius", rl.KeyB, "B", CategoryDebug, nil, true},
	{OverlaySliders, "Sliders", "Live parameter sliders", rl.KeyTab, "Tab", CategoryPanels, nil, false},
	{OverlayPerf, "Performance", "Per-phase tick timing", rl.KeyF3, "F3", CategoryPanels, nil, false},
	{OverlayControls, "Overlays", "This list", rl.KeyF1, "F1", CategoryPanels, nil, false},
}

// OverlayRegistry tracks which overlays are on.
type OverlayRegistry struct {
	order   []OverlayDescriptor
	byID    map[OverlayID]int
	enabled map[OverlayID]bool
}

// NewOverlayRegistry returns a registry holding the fluid overlays in their
// default state.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{
		byID:    make(map[OverlayID]int, len(fluidOverlays)),
		enabled: make(map[OverlayID]bool, len(fluidOverlays)),
	}
	for _, d := range fluidOverlays {
		r.byID[d.ID] = len(r.order)
		r.order = append(r.order, d)
	}
	for _, d := range fluidOverlays {
		if d.On {
			r.SetEnabled(d.ID, true)
		}
	}
	return r
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled switches an overlay. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	i, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = on
	if on {
		for _, other := range r.order[i].Excludes {
			r.enabled[other] = false
		}
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns the overlays of one category in registry order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.order {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns each category once, in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.order {
		if len(cats) == 0 || cats[len(cats)-1] != d.Category {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// ToggleKey flips the overlay bound to key and reports whether one was bound.
func (r *OverlayRegistry) ToggleKey(key int32) bool {
	for _, d := range r.order {
		if d.Key != 0 && d.Key == key {
			r.Toggle(d.ID)
			return true
		}
	}
	return false
}
