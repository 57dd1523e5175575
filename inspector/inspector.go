// Package inspector draws a panel listing the components of a selected
// particle entity.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sph/sim"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
	SectionGap   = 6
	SectionTitle = 20
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages particle selection and panel rendering.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	panelHeight  int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{panelY: 10}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize anchors the panel to the right edge of a new screen size.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select starts inspecting e.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether a screen point lies on the open panel.
func (ins *Inspector) Contains(mouseX, mouseY float32) bool {
	if !ins.hasSelected {
		return false
	}
	mx, my := int32(mouseX), int32(mouseY)
	return mx >= ins.panelX && mx <= ins.panelX+PanelWidth &&
		my >= ins.panelY && my <= ins.panelY+ins.panelHeight
}

// HitClose reports whether a screen point lies on the close button.
func (ins *Inspector) HitClose(mouseX, mouseY float32) bool {
	if !ins.hasSelected {
		return false
	}
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	mx, my := int32(mouseX), int32(mouseY)
	return mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20
}

// Draw renders the inspector panel if a live entity is selected.
func (ins *Inspector) Draw(world *ecs.World, mapper *sim.ParticleMapper, dim int) {
	if !ins.hasSelected {
		return
	}
	// Entities are replaced on reset.
	if !world.Alive(ins.selected) {
		ins.Deselect()
		return
	}

	pos, vel, fl, part := mapper.Get(ins.selected)
	sections := Sections(dim, part, pos, vel, fl)

	ins.panelHeight = panelHeight(sections)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("PARTICLE #%d", part.Index), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.Title)
		y += SectionTitle
		for _, f := range s.Fields {
			y += DrawField(x, y, f)
		}
		y += SectionGap
	}
}

func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

func panelHeight(sections []Section) int32 {
	h := int32(HeaderHeight + 2*PanelPadding)
	for _, s := range sections {
		h += SectionTitle + SectionGap
		for _, f := range s.Fields {
			h += FieldHeight(f)
		}
	}
	return h
}
