package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controls panel colours.
var (
	colorToggleOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
	colorToggleOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	colorRowHover  = rl.Color{R: 60, G: 70, B: 90, A: 160}
	colorKeyLabel  = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// controlRow is one clickable overlay line, laid out on each Draw.
type controlRow struct {
	desc OverlayDescriptor
	rect rl.Rectangle
}

// ControlsPanel lists every overlay by category. Clicking a row toggles it
// and hovering shows its description.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	rows     []controlRow
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel; rows are relaid out on the next Draw.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether a screen point is inside the panel as last drawn.
func (c *ControlsPanel) Contains(mx, my float32) bool {
	return c.height > 0 &&
		mx >= float32(c.x) && mx <= float32(c.x+c.width) &&
		my >= float32(c.y) && my <= float32(c.y+c.height)
}

// layout places a header line per category and a row per overlay, and
// returns the panel height.
func (c *ControlsPanel) layout(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	c.rows = c.rows[:0]

	y := c.y + t.Padding + t.LineHeight + 4
	for _, category := range overlays.Categories() {
		y += t.LineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.rows = append(c.rows, controlRow{
				desc: desc,
				rect: rl.Rectangle{
					X:      float32(c.x + t.Padding - 2),
					Y:      float32(y - 1),
					Width:  float32(c.width - 2*t.Padding + 4),
					Height: float32(t.LineHeight),
				},
			})
			y += t.LineHeight
		}
		y += 4
	}
	return y - c.y + t.Padding
}

// Draw renders the panel, applies a clicked toggle to overlays and returns
// the panel height.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	t := r.Theme
	c.height = c.layout(overlays)

	r.DrawPanel(c.x, c.y, c.width, c.height)
	rl.DrawText("Overlays", c.x+t.Padding, c.y+t.Padding, 16, rl.White)

	mouse := rl.GetMousePosition()
	var hovered *OverlayDescriptor
	category := ""
	for i := range c.rows {
		row := &c.rows[i]
		if row.desc.Category != category {
			category = row.desc.Category
			rl.DrawText(category, c.x+t.Padding, int32(row.rect.Y)-t.LineHeight+1, t.HeaderFontSize, t.SectionHeader)
		}

		if rl.CheckCollisionPointRec(mouse, row.rect) {
			hovered = &row.desc
			rl.DrawRectangleRec(row.rect, colorRowHover)
			if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
				overlays.Toggle(row.desc.ID)
			}
		}
		c.drawRow(row, overlays.IsEnabled(row.desc.ID))
	}

	if hovered != nil && hovered.Description != "" {
		rl.DrawText(hovered.Description, c.x+c.width+8, int32(mouse.Y)-6, t.FontSize, t.LabelColor)
	}
	return c.height
}

func (c *ControlsPanel) drawRow(row *controlRow, enabled bool) {
	t := c.renderer.Theme
	x, y := int32(row.rect.X)+2, int32(row.rect.Y)+1

	status, name := colorToggleOff, t.LabelColor
	if enabled {
		status, name = colorToggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	rl.DrawText(row.desc.Name, x+14, y, t.FontSize, name)

	if row.desc.KeyLabel != "" {
		key := fmt.Sprintf("[%s]", row.desc.KeyLabel)
		w := rl.MeasureText(key, t.FontSize)
		rl.DrawText(key, x+int32(row.rect.Width)-w-4, y, t.FontSize, colorKeyLabel)
	}
}
