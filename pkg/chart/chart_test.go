package chart

import (
	"strings"
	"testing"

	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/errors"
	"github.com/syampillai/sochart/pkg/part"
)

// newRect builds a rectangular coordinate with one category X-axis and one
// value Y-axis.
func newRect(r *part.Registry) (*Rectangular, *Axis, *Axis) {
	x := NewAxis(r, AxisX, data.TypeCategory)
	y := NewAxis(r, AxisY, data.TypeNumber)
	return NewRectangular(r, x, y), x, y
}

func TestSeriesValidate(t *testing.T) {
	tests := []struct {
		name     string
		build    func(r *part.Registry) *Series
		wantCode errors.Code
		wantIn   string // substring expected in the error message
	}{
		{
			name: "Valid",
			build: func(r *part.Registry) *Series {
				coord, _, _ := newRect(r)
				s := NewSeries(r, KindLine, data.NewCategories(r, "a"), data.NewNumbers(r, 1))
				s.PlotOn(coord)
				return s
			},
		},
		{
			name: "NoCoordinate",
			build: func(r *part.Registry) *Series {
				return NewSeries(r, KindLine, data.NewCategories(r, "a"), data.NewNumbers(r, 1))
			},
			wantCode: errors.ErrCodeNoCoordinate,
		},
		{
			name: "PieNeedsNoCoordinate",
			build: func(r *part.Registry) *Series {
				return NewSeries(r, KindPie, data.NewNumbers(r, 1, 2, 3))
			},
		},
		{
			name: "ForeignAxis",
			build: func(r *part.Registry) *Series {
				coord, _, _ := newRect(r)
				stray := NewAxis(r, AxisX, data.TypeCategory)
				stray.SetName("Months")
				s := NewSeries(r, KindLine, data.NewCategories(r, "a"), data.NewNumbers(r, 1))
				s.PlotOn(coord, stray)
				return s
			},
			wantCode: errors.ErrCodeAxisNotInCoordinate,
			wantIn:   "Months",
		},
		{
			name: "ForeignAxisUnnamedFallsBackToKind",
			build: func(r *part.Registry) *Series {
				coord, _, _ := newRect(r)
				stray := NewAxis(r, AxisY, data.TypeNumber)
				s := NewSeries(r, KindLine, data.NewCategories(r, "a"), data.NewNumbers(r, 1))
				s.PlotOn(coord, stray)
				return s
			},
			wantCode: errors.ErrCodeAxisNotInCoordinate,
			wantIn:   "Y-axis",
		},
		{
			name: "DuplicateAxisKind",
			build: func(r *part.Registry) *Series {
				x1 := NewAxis(r, AxisX, data.TypeCategory)
				x2 := NewAxis(r, AxisX, data.TypeCategory)
				y := NewAxis(r, AxisY, data.TypeNumber)
				coord := NewRectangular(r, x1, x2, y)
				s := NewSeries(r, KindLine, data.NewCategories(r, "a"), data.NewNumbers(r, 1))
				s.PlotOn(coord, x1, x2)
				return s
			},
			wantCode: errors.ErrCodeDuplicateAxis,
		},
		{
			name: "MissingDataNamesSecondAxis",
			build: func(r *part.Registry) *Series {
				x := NewAxis(r, AxisX, data.TypeCategory)
				y := NewAxis(r, AxisY, data.TypeNumber)
				y.SetName("Revenue")
				coord := NewRectangular(r, x, y)
				s := NewSeries(r, KindBar, data.NewCategories(r, "a"))
				s.PlotOn(coord)
				return s
			},
			wantCode: errors.ErrCodeDataNotSet,
			wantIn:   "Revenue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := part.NewRegistry()
			s := tt.build(r)
			err := s.Validate()

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("Validate = %v, want code %s", err, tt.wantCode)
			}
			if tt.wantIn != "" && !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantIn)
			}
		})
	}
}

func TestSeriesValidateNumbered(t *testing.T) {
	r := part.NewRegistry()
	coord, _, _ := newRect(r)
	s := NewSeries(r, KindLine, data.NewCategories(r, "a"), data.NewNumbers(r, 1))
	s.PlotOn(coord)

	// Before numbering the coordinate is not part of the active graph.
	if err := s.ValidateNumbered(); !errors.Is(err, errors.ErrCodeNoCoordinate) {
		t.Fatalf("ValidateNumbered before numbering = %v, want %s", err, errors.ErrCodeNoCoordinate)
	}

	if err := coord.AssignSerial(0); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.ValidateNumbered(); err != nil {
		t.Errorf("ValidateNumbered after numbering: %v", err)
	}
}

func TestCoordinateValidate(t *testing.T) {
	r := part.NewRegistry()

	// Missing Y-axis.
	lonely := NewRectangular(r, NewAxis(r, AxisX, data.TypeCategory))
	if err := lonely.Validate(); err == nil {
		t.Error("rectangular coordinate without a Y-axis should fail")
	}

	// Polar axis on a grid.
	mixed := NewRectangular(r,
		NewAxis(r, AxisX, data.TypeCategory),
		NewAxis(r, AxisY, data.TypeNumber),
		NewAxis(r, AxisAngle, data.TypeNumber))
	if err := mixed.Validate(); err == nil {
		t.Error("angle axis on a rectangular coordinate should fail")
	}

	coord, _, _ := newRect(r)
	if err := coord.Validate(); err != nil {
		t.Errorf("valid coordinate: %v", err)
	}

	polar := NewPolar(r,
		NewAxis(r, AxisAngle, data.TypeNumber),
		NewAxis(r, AxisRadius, data.TypeNumber))
	if err := polar.Validate(); err != nil {
		t.Errorf("valid polar: %v", err)
	}
}

func TestAddAxisDeduplicates(t *testing.T) {
	r := part.NewRegistry()
	coord, x, _ := newRect(r)

	coord.AddAxis(x)
	coord.AddAxis(nil)
	if got := len(coord.Axes()); got != 2 {
		t.Errorf("axes = %d, want 2", got)
	}
}

func TestWrapperSharedAxis(t *testing.T) {
	r := part.NewRegistry()

	// One X-axis shared by two grids: each pairing gets its own wrapper,
	// created once and reused.
	x := NewAxis(r, AxisX, data.TypeCategory)
	y1 := NewAxis(r, AxisY, data.TypeNumber)
	y2 := NewAxis(r, AxisY, data.TypeNumber)
	g1 := NewRectangular(r, x, y1)
	g2 := NewRectangular(r, x, y2)

	w1 := wrapperFor(r, x, g1)
	w2 := wrapperFor(r, x, g2)
	if w1 == w2 {
		t.Fatal("each (axis, coordinate) pairing must have its own wrapper")
	}
	if again := wrapperFor(r, x, g1); again != w1 {
		t.Error("wrapperFor must reuse the recorded wrapper")
	}

	if got := len(r.WrappersOf(x.ID())); got != 2 {
		t.Errorf("side table holds %d wrappers, want 2", got)
	}
}

func TestWrapperEncodeJSON(t *testing.T) {
	r := part.NewRegistry()
	coord, x, _ := newRect(r)
	x.SetName("Weeks")
	x.SetMin(`"2026-01-01"`)

	if err := coord.AssignSerial(1); err != nil {
		t.Fatalf("assign: %v", err)
	}
	w := wrapperFor(r, x, coord)

	got := string(w.EncodeJSON(nil))
	want := `{"type":"category","name":"Weeks","min":"2026-01-01","gridIndex":1}`
	if got != want {
		t.Errorf("EncodeJSON = %s, want %s", got, want)
	}
}

func TestSeriesEncodeJSON(t *testing.T) {
	r := part.NewRegistry()
	coord, x, y := newRect(r)

	cats := data.NewCategories(r, "a", "b")
	nums := data.NewNumbers(r, 1, 2)
	s := NewSeries(r, KindBar, cats, nums)
	s.SetName("Revenue")
	s.PlotOn(coord)

	// Simulate one numbering pass.
	if err := coord.AssignSerial(0); err != nil {
		t.Fatal(err)
	}
	// Each wrapper is first within its own encoder group.
	wx := wrapperFor(r, x, coord)
	wy := wrapperFor(r, y, coord)
	for _, p := range []part.Part{wx, wy} {
		if err := p.AssignSerial(0); err != nil {
			t.Fatal(err)
		}
	}
	if err := cats.AssignSerial(1); err != nil {
		t.Fatal(err)
	}
	if err := nums.AssignSerial(2); err != nil {
		t.Fatal(err)
	}

	got := string(s.EncodeJSON(nil))
	want := `{"type":"bar","name":"Revenue","data":["d1","d2"],"xAxisIndex":0,"yAxisIndex":0}`
	if got != want {
		t.Errorf("EncodeJSON = %s, want %s", got, want)
	}
}

func TestSupportingPartsEncodeJSON(t *testing.T) {
	r := part.NewRegistry()

	tests := []struct {
		name string
		p    Encodable
		want string
	}{
		{
			name: "Title",
			p: func() Encodable {
				ti := NewTitle(r, "Project Plan")
				ti.Subtext = "Q3"
				return ti
			}(),
			want: `{"text":"Project Plan","subtext":"Q3"}`,
		},
		{
			name: "Legend",
			p:    NewLegend(r),
			want: `{"show":true}`,
		},
		{
			name: "Toolbox",
			p:    NewToolbox(r, "saveAsImage", "dataZoom"),
			want: `{"feature":{"saveAsImage":{},"dataZoom":{}}}`,
		},
		{
			name: "ColorSet",
			p:    NewColorSet(r, "#5470c6", "#91cc75"),
			want: `["#5470c6","#91cc75"]`,
		},
		{
			name: "TextStyle",
			p: func() Encodable {
				ts := NewTextStyle(r)
				ts.FontFamily = "sans-serif"
				ts.FontSize = 12
				return ts
			}(),
			want: `{"fontFamily":"sans-serif","fontSize":12}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.p.EncodeJSON(nil)); got != tt.want {
				t.Errorf("EncodeJSON = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDataZoomEncodeJSON(t *testing.T) {
	r := part.NewRegistry()
	coord, x, _ := newRect(r)
	w := wrapperFor(r, x, coord)
	if err := w.AssignSerial(0); err != nil {
		t.Fatal(err)
	}

	z := NewDataZoom(r, coord, x)
	z.Start = 25
	z.End = 75

	got := string(z.EncodeJSON(nil))
	want := `{"type":"slider","start":25,"end":75,"xAxisIndex":0}`
	if got != want {
		t.Errorf("EncodeJSON = %s, want %s", got, want)
	}
}
