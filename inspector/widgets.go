package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg    = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarLow   = rl.Color{R: 70, G: 110, B: 200, A: 255}
	ColorBarHigh  = rl.Color{R: 230, G: 120, B: 60, A: 255}
	ColorText     = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim  = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
	ColorOverflow = rl.Color{R: 255, G: 70, B: 70, A: 255}
)

// Row heights returned by the draw functions.
const (
	labelHeight = 20
	barHeight   = 18
	boolHeight  = 18
)

// DrawLabel renders a field as "name: value".
func DrawLabel(x, y int32, f Field) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", f.Name, f.Text()), x, y, 16, ColorText)
	return labelHeight
}

// DrawBar renders a horizontal bar scaled to full. Values past full draw a
// red marker at the right edge.
func DrawBar(x, y int32, name string, value, full float32) int32 {
	ratio := value / full
	over := ratio > 1
	if over {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	h := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 100
	rl.DrawRectangle(barX, y, barWidth, h, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), h, lerpColor(ColorBarLow, ColorBarHigh, ratio))
	if over {
		rl.DrawRectangle(barX+barWidth-3, y, 3, h, ColorOverflow)
	}

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return barHeight
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 100
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)
	return boolHeight
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := field.Float(); ok {
			return DrawBar(x, y, field.Name, v, field.Max)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field)
}

// FieldHeight returns the height DrawField will use for f.
func FieldHeight(f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if _, ok := f.Float(); ok {
			return barHeight
		}
	case WidgetBool:
		if _, ok := f.Value.(bool); ok {
			return boolHeight
		}
	}
	return labelHeight
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
