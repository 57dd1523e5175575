package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Hint is a parsed `inspect` tag: a widget name followed by key:value
// options, e.g. `inspect:"bar,max:30"` or `inspect:"label,fmt:%.3f,dim:3"`.
type Hint struct {
	Widget Widget
	Format string  // fmt verb for labels
	Max    float32 // full-scale value for bars
	MinDim int     // hide the field below this dimension
}

// ParseHint reads an inspect tag. Unknown widgets fall back to WidgetAuto,
// and malformed options are ignored.
func ParseHint(tag string) Hint {
	h := Hint{Max: 1}
	if tag == "" {
		return h
	}
	parts := strings.Split(tag, ",")
	h.Widget = widgetNames[strings.TrimSpace(parts[0])]

	for _, part := range parts[1:] {
		key, val, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			h.Format = val
		case "max":
			if m, err := strconv.ParseFloat(val, 32); err == nil && m > 0 {
				h.Max = float32(m)
			}
		case "dim":
			if d, err := strconv.Atoi(val); err == nil {
				h.MinDim = d
			}
		}
	}
	return h
}

// Field is one exported component field ready to draw.
type Field struct {
	Name  string
	Value any
	Hint
}

// Float returns the value as float32 for the numeric kinds components use.
func (f Field) Float() (float32, bool) {
	switch v := f.Value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case uint32:
		return float32(v), true
	}
	return 0, false
}

// Text formats the value with the hint's verb, or two decimals for floats.
func (f Field) Text() string {
	if f.Format != "" {
		return fmt.Sprintf(f.Format, f.Value)
	}
	switch v := f.Value.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 2, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return fmt.Sprint(f.Value)
}

// Section groups the fields of one component under its type name.
type Section struct {
	Title  string
	Fields []Field
}

// ExtractFields returns the exported fields of a component struct (or
// pointer to one) that apply to a simulation of dimension dim.
func ExtractFields(component any, dim int) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		h := ParseHint(sf.Tag.Get("inspect"))
		if h.Widget == WidgetSkip || dim < h.MinDim {
			continue
		}
		fv := v.Field(i)
		if h.Widget == WidgetAuto {
			h.Widget = WidgetLabel
			if fv.Kind() == reflect.Bool {
				h.Widget = WidgetBool
			}
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Hint: h})
	}
	return fields
}

// Sections extracts one section per component, titled by its type name.
// Components with no visible fields are left out.
func Sections(dim int, comps ...any) []Section {
	sections := make([]Section, 0, len(comps))
	for _, c := range comps {
		fields := ExtractFields(c, dim)
		if len(fields) == 0 {
			continue
		}
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		sections = append(sections, Section{Title: strings.ToUpper(t.Name()), Fields: fields})
	}
	return sections
}
