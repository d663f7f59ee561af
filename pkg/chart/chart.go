// Package chart implements the chart part graph: axes, coordinate systems,
// series and the supporting parts (title, legend, toolbox, data zoom), along
// with the cross-reference validation rules between them.
//
// A part graph is assembled by the host application and handed to a board
// (package board) for validation, serial numbering and emission. Components
// are validated twice per update cycle: once before numbering (structural
// rules) and once after (rules that depend on assigned serials, such as a
// series referencing a coordinate system that is part of the active graph).
//
// # Validation policy
//
// Cross-reference violations fail fast: the first violation aborts the whole
// update with a descriptive error naming the offending part. The single
// documented exception is a series of a flexible kind given data of an
// unexpected shape, which renders as an empty series instead of failing.
package chart

import (
	"strconv"

	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/errors"
	"github.com/syampillai/sochart/pkg/part"
)

// Encodable is a part that renders into the option document: it declares an
// encoder group and renders one JSON object (or, for self-rendering groups,
// a payload merged at the top level).
type Encodable interface {
	part.Part

	// Group returns the encoder group the part renders into.
	Group() part.Group

	// EncodeJSON appends the part's JSON rendering to dst.
	EncodeJSON(dst []byte) []byte
}

// Component is a top-level chart component managed by a board.
type Component interface {
	Encodable

	// Validate checks the component's structural invariants. Called before
	// serial numbering; must not depend on serials.
	Validate() error

	// ValidateNumbered checks invariants that only hold after numbering,
	// such as references to other parts' serials.
	ValidateNumbered() error

	// CollectParts contributes the component's constituent encodable parts
	// (axis wrappers and the like). The component itself is already known
	// to the board and must not add itself.
	CollectParts(add func(Encodable))

	// DeclaredData returns the data providers the component's rendering
	// depends on. Providers shared between components are transmitted once.
	DeclaredData() []data.Provider
}

// Composite is a component that bundles further components, contributed to
// the board when the composite itself is added. Boards expand composites
// before validation, so the bundled components take part in the update cycle
// exactly as if they had been added directly.
type Composite interface {
	Component

	// Components returns the bundled components. Must be stable across
	// calls within one update cycle.
	Components() []Component
}

// SeriesKind is the explicit series type tag; it selects the rendering type
// emitted to the engine and the series' axis requirements.
type SeriesKind int

const (
	// KindLine renders a line series on a rectangular coordinate.
	KindLine SeriesKind = iota
	// KindBar renders a bar series on a rectangular coordinate.
	KindBar
	// KindScatter renders a scatter series on a rectangular coordinate.
	KindScatter
	// KindPie renders a pie series; it needs no coordinate system.
	KindPie
	// KindCustom renders positional rows through engine-side render hooks;
	// task charts use it. Custom series are flexible about data shape:
	// unexpected shapes degrade to an empty series instead of failing.
	KindCustom
)

var seriesKindNames = map[SeriesKind]string{
	KindLine:    "line",
	KindBar:     "bar",
	KindScatter: "scatter",
	KindPie:     "pie",
	KindCustom:  "custom",
}

// String returns the engine-side type name of the kind.
func (k SeriesKind) String() string { return seriesKindNames[k] }

// requiredAxes returns how many axes (and therefore data providers) a series
// of this kind needs.
func (k SeriesKind) requiredAxes() int {
	switch k {
	case KindPie:
		return 1
	case KindCustom:
		return 0
	default:
		return 2
	}
}

// needsCoordinate reports whether the kind must be placed on a coordinate
// system.
func (k SeriesKind) needsCoordinate() bool { return k != KindPie }

// Series is a single rendered series: a kind, the data providers feeding it,
// an optional explicit axis list and an optional coordinate system.
type Series struct {
	part.Base
	kind       SeriesKind
	name       string
	color      string
	renderHook string
	providers  []data.Provider
	axes       []*Axis
	coord      CoordinateSystem
	reg        *part.Registry
}

// NewSeries creates a series of the given kind over the given providers.
func NewSeries(r *part.Registry, kind SeriesKind, providers ...data.Provider) *Series {
	return &Series{Base: part.NewBase(r), reg: r, kind: kind, providers: providers}
}

// SetName assigns a display name.
func (s *Series) SetName(name string) { s.name = name }

// SetColor assigns an explicit series color (e.g. "#5470c6").
func (s *Series) SetColor(color string) { s.color = color }

// SetRenderHook names the engine-side render function for custom series.
func (s *Series) SetRenderHook(name string) { s.renderHook = name }

// PlotOn places the series on a coordinate system. Passing explicit axes
// restricts the series to those axes; with no axes the series uses the
// coordinate system's full axis list.
func (s *Series) PlotOn(c CoordinateSystem, axes ...*Axis) {
	s.coord = c
	s.axes = axes
}

// Kind returns the series kind.
func (s *Series) Kind() SeriesKind { return s.kind }

// Coordinate returns the coordinate system the series is plotted on, or nil.
func (s *Series) Coordinate() CoordinateSystem { return s.coord }

// Label returns the series name, or its kind when unnamed.
func (s *Series) Label() string {
	if s.name != "" {
		return s.name
	}
	return s.kind.String() + " series"
}

// Group returns the series encoder group.
func (s *Series) Group() part.Group { return part.GroupSeries }

// effectiveAxes returns the explicit axis list when set, otherwise the
// coordinate system's full list.
func (s *Series) effectiveAxes() []*Axis {
	if len(s.axes) > 0 {
		return s.axes
	}
	if s.coord != nil {
		return s.coord.Axes()
	}
	return nil
}

// Validate checks the series' structural invariants:
//
//   - a coordinate-bound kind must have a coordinate system,
//   - every explicitly attached axis must belong to that coordinate system,
//   - no two explicit axes may share a kind (ambiguous which to use),
//   - the series must carry at least as many data providers as its kind's
//     required axis count.
func (s *Series) Validate() error {
	if s.kind.needsCoordinate() && s.coord == nil {
		return errors.New(errors.ErrCodeNoCoordinate,
			"%s is not placed on any coordinate system", s.Label())
	}

	if s.coord != nil {
		for _, a := range s.axes {
			if !s.coord.ContainsAxis(a) {
				return errors.New(errors.ErrCodeAxisNotInCoordinate,
					"%s does not belong to the coordinate system of %s", a.Label(), s.Label())
			}
		}
	}

	seen := map[AxisKind]bool{}
	for _, a := range s.axes {
		if seen[a.Kind()] {
			return errors.New(errors.ErrCodeDuplicateAxis,
				"%s has two explicit axes of kind %s", s.Label(), a.Kind())
		}
		seen[a.Kind()] = true
	}

	if required := s.kind.requiredAxes(); len(s.providers) < required {
		missing := "axis " + strconv.Itoa(len(s.providers))
		if axes := s.effectiveAxes(); len(s.providers) < len(axes) {
			missing = axes[len(s.providers)].Label()
		}
		return errors.New(errors.ErrCodeDataNotSet,
			"data not set for %s of %s", missing, s.Label())
	}

	return nil
}

// ValidateNumbered checks that the series' coordinate system is part of the
// active graph, which is only knowable once serials are assigned.
func (s *Series) ValidateNumbered() error {
	if s.coord != nil && s.coord.Serial() < 0 {
		return errors.New(errors.ErrCodeNoCoordinate,
			"coordinate system of %s is not part of the chart", s.Label())
	}
	return nil
}

// CollectParts contributes nothing: the series' axes render through the
// coordinate system that owns them.
func (s *Series) CollectParts(add func(Encodable)) {}

// DeclaredData returns the providers feeding the series.
func (s *Series) DeclaredData() []data.Provider { return s.providers }

// EncodeJSON renders the series object. Data providers are referenced by
// their dataset keys; axis references use the wrapper serial for this
// series' coordinate system.
func (s *Series) EncodeJSON(dst []byte) []byte {
	dst = append(dst, `{"type":`...)
	dst = strconv.AppendQuote(dst, s.kind.String())
	if s.renderHook != "" {
		dst = append(dst, `,"renderItem":`...)
		dst = strconv.AppendQuote(dst, s.renderHook)
	}
	if s.name != "" {
		dst = append(dst, `,"name":`...)
		dst = strconv.AppendQuote(dst, s.name)
	}
	if s.color != "" {
		dst = append(dst, `,"color":`...)
		dst = strconv.AppendQuote(dst, s.color)
	}

	dst = append(dst, `,"data":[`...)
	for i, p := range s.providers {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '"', 'd')
		dst = strconv.AppendInt(dst, int64(p.Serial()), 10)
		dst = append(dst, '"')
	}
	dst = append(dst, ']')

	if s.coord != nil {
		for _, a := range s.effectiveAxes() {
			w, ok := s.reg.Wrapper(a.ID(), s.coord.PartID())
			if !ok {
				continue
			}
			switch a.Kind() {
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
