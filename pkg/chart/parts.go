package chart

import (
	"strconv"

	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/part"
)

// simple carries the state shared by the plain data-holder parts below.
// They have no structural invariants and contribute no sub-parts.
type simple struct {
	part.Base
}

func (simple) Validate() error               { return nil }
func (simple) ValidateNumbered() error       { return nil }
func (simple) CollectParts(func(Encodable))  {}
func (simple) DeclaredData() []data.Provider { return nil }

// Title is the chart title component.
type Title struct {
	simple
	Text    string
	Subtext string
}

// NewTitle creates a title component.
func NewTitle(r *part.Registry, text string) *Title {
	return &Title{simple: simple{Base: part.NewBase(r)}, Text: text}
}

// Label identifies the title in error messages.
func (t *Title) Label() string { return "title" }

// Group returns the title encoder group.
func (t *Title) Group() part.Group { return part.GroupTitle }

// EncodeJSON renders the title object.
func (t *Title) EncodeJSON(dst []byte) []byte {
	dst = append(dst, `{"text":`...)
	dst = strconv.AppendQuote(dst, t.Text)
	if t.Subtext != "" {
		dst = append(dst, `,"subtext":`...)
		dst = strconv.AppendQuote(dst, t.Subtext)
	}
	return append(dst, '}')
}

// Legend is the chart legend component.
type Legend struct {
	simple
	Show bool
}

// NewLegend creates a visible legend component.
func NewLegend(r *part.Registry) *Legend {
	return &Legend{simple: simple{Base: part.NewBase(r)}, Show: true}
}

// Label identifies the legend in error messages.
func (l *Legend) Label() string { return "legend" }

// Group returns the legend encoder group.
func (l *Legend) Group() part.Group { return part.GroupLegend }

// EncodeJSON renders the legend object.
func (l *Legend) EncodeJSON(dst []byte) []byte {
	dst = append(dst, `{"show":`...)
	dst = strconv.AppendBool(dst, l.Show)
	return append(dst, '}')
}

// Toolbox is the toolbox component carrying engine-side feature buttons.
type Toolbox struct {
	simple
	Features []string // engine feature names, e.g. "saveAsImage", "dataZoom"
}

// NewToolbox creates a toolbox with the given features.
func NewToolbox(r *part.Registry, features ...string) *Toolbox {
	return &Toolbox{simple: simple{Base: part.NewBase(r)}, Features: features}
}

// Label identifies the toolbox in error messages.
func (t *Toolbox) Label() string { return "toolbox" }

// Group returns the toolbox encoder group.
func (t *Toolbox) Group() part.Group { return part.GroupToolbox }

// EncodeJSON renders the toolbox object with one empty config per feature.
func (t *Toolbox) EncodeJSON(dst []byte) []byte {
	dst = append(dst, `{"feature":{`...)
	for i, f := range t.Features {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendQuote(dst, f)
		dst = append(dst, `:{}`...)
	}
	return append(dst, `}}`...)
}

// DataZoom restricts the visible window of an axis, expressed in percent of
// the full range.
type DataZoom struct {
	simple
	Start float64 // window start in percent [0,100]
	End   float64 // window end in percent [0,100]
	axis  *Axis
	coord CoordinateSystem
	reg   *part.Registry
}

// NewDataZoom creates a zoom window over the given axis of the given
// coordinate system.
func NewDataZoom(r *part.Registry, c CoordinateSystem, a *Axis) *DataZoom {
	return &DataZoom{
		simple: simple{Base: part.NewBase(r)},
		Start:  0, End: 100,
		axis: a, coord: c, reg: r,
	}
}

// Label identifies the zoom in error messages.
func (z *DataZoom) Label() string { return "dataZoom" }

// Group returns the data-zoom encoder group.
func (z *DataZoom) Group() part.Group { return part.GroupDataZoom }

// EncodeJSON renders the zoom object, referencing its axis by wrapper serial.
func (z *DataZoom) EncodeJSON(dst []byte) []byte {
	dst = append(dst, `{"type":"slider","start":`...)
	dst = strconv.AppendFloat(dst, z.Start, 'g', -1, 64)
	dst = append(dst, `,"end":`...)
	dst = strconv.AppendFloat(dst, z.End, 'g', -1, 64)
	if z.axis != nil && z.coord != nil {
		if w, ok := z.reg.Wrapper(z.axis.ID(), z.coord.PartID()); ok {
			switch z.axis.Kind() {
			case AxisX:
				dst = append(dst, `,"xAxisIndex":`...)
			case AxisY:
				dst = append(dst, `,"yAxisIndex":`...)
			case AxisAngle:
				dst = append(dst, `,"angleAxisIndex":`...)
			case AxisRadius:
				dst = append(dst, `,"radiusAxisIndex":`...)
			}
			dst = strconv.AppendInt(dst, int64(w.(*wrapper).Serial()), 10)
		}
	}
	return append(dst, '}')
}

// ColorSet is the self-rendering default color palette: its payload merges
// directly at the top level of the option document under "color".
type ColorSet struct {
	simple
	Colors []string
}

// NewColorSet creates a palette with the given colors.
func NewColorSet(r *part.Registry, colors ...string) *ColorSet {
	return &ColorSet{simple: simple{Base: part.NewBase(r)}, Colors: colors}
}

// Label identifies the palette in error messages.
func (c *ColorSet) Label() string { return "color" }

// Group returns the self-rendering color group.
func (c *ColorSet) Group() part.Group { return part.GroupColor }

// EncodeJSON renders the palette as a JSON array of color strings.
func (c *ColorSet) EncodeJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, col := range c.Colors {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendQuote(dst, col)
	}
	return append(dst, ']')
}

// TextStyle is the self-rendering default text style: its payload merges
// directly at the top level of the option document under "textStyle".
type TextStyle struct {
	simple
	FontFamily string
	FontSize   int
}

// NewTextStyle creates a default text style.
func NewTextStyle(r *part.Registry) *TextStyle {
	return &TextStyle{simple: simple{Base: part.NewBase(r)}}
}

// Label identifies the text style in error messages.
func (t *TextStyle) Label() string { return "textStyle" }

// Group returns the self-rendering text-style group.
func (t *TextStyle) Group() part.Group { return part.GroupTextStyle }

// EncodeJSON renders the text style object.
func (t *TextStyle) EncodeJSON(dst []byte) []byte {
	dst = append(dst, '{')
	first := true
	if t.FontFamily != "" {
		dst = append(dst, `"fontFamily":`...)
		dst = strconv.AppendQuote(dst, t.FontFamily)
		first = false
	}
	if t.FontSize > 0 {
		if !first {
			dst = append(dst, ',')
		}
		dst = append(dst, `"fontSize":`...)
		dst = strconv.AppendInt(dst, int64(t.FontSize), 10)
	}
	return append(dst, '}')
}
