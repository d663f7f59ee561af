package chart

import (
	"strconv"

	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/part"
)

// AxisKind is the explicit role an axis plays inside a coordinate system.
// The kind decides the encoder group the axis renders into; it is carried as
// data so the pipeline never inspects runtime types.
type AxisKind int

const (
	// AxisX is the horizontal axis of a rectangular coordinate.
	AxisX AxisKind = iota
	// AxisY is the vertical axis of a rectangular coordinate.
	AxisY
	// AxisAngle is the angular axis of a polar coordinate.
	AxisAngle
	// AxisRadius is the radial axis of a polar coordinate.
	AxisRadius
)

var axisKindNames = map[AxisKind]string{
	AxisX:      "X-axis",
	AxisY:      "Y-axis",
	AxisAngle:  "angle axis",
	AxisRadius: "radius axis",
}

// String returns a human-readable name for the kind.
func (k AxisKind) String() string { return axisKindNames[k] }

// group returns the encoder group wrappers of this kind render into.
func (k AxisKind) group() part.Group {
	switch k {
	case AxisX:
		return part.GroupXAxis
	case AxisY:
		return part.GroupYAxis
	case AxisAngle:
		return part.GroupAngleAxis
	default:
		return part.GroupRadiusAxis
	}
}

// Axis describes one logical axis: a kind, a declared data type and an
// optional name. An axis is not itself rendered; one axis instance may be
// shared by several coordinate systems, and each pairing renders through its
// own wrapper holding that pairing's serial. The wrappers are recorded
// in the registry side table, keyed by (axis identity, coordinate identity).
type Axis struct {
	id       int64
	kind     AxisKind
	dataType data.Type
	name     string
	min, max string // optional explicit bounds, pre-rendered JSON scalars
}

// NewAxis creates an axis of the given kind and data type.
func NewAxis(r *part.Registry, kind AxisKind, dataType data.Type) *Axis {
	return &Axis{id: r.NextID(), kind: kind, dataType: dataType}
}

// ID returns the axis's permanent identity.
func (a *Axis) ID() int64 { return a.id }

// Kind returns the axis role.
func (a *Axis) Kind() AxisKind { return a.kind }

// DataType returns the declared data type.
func (a *Axis) DataType() data.Type { return a.dataType }

// SetName assigns a display name, used both in the emitted document and as
// the locator in validation errors.
func (a *Axis) SetName(name string) { a.name = name }

// Name returns the display name, which may be empty.
func (a *Axis) Name() string { return a.name }

// Label returns the display name, or the kind when unnamed. Validation
// errors report this.
func (a *Axis) Label() string {
	if a.name != "" {
		return a.name
	}
	return a.kind.String()
}

// wrapper is the per-(axis, coordinate system) adapter that lets one logical
// axis be rendered distinctly inside several coordinate systems. Wrappers are
// the serial-bearing parts that enter the encoder groups; construction
// records the wrapper in the registry side table.
type wrapper struct {
	part.Base
	axis  *Axis
	coord CoordinateSystem
}

// wrapperFor returns the wrapper adapting axis for coord, creating and
// registering it on first use.
func wrapperFor(r *part.Registry, axis *Axis, coord CoordinateSystem) *wrapper {
	if w, ok := r.Wrapper(axis.id, coord.PartID()); ok {
		return w.(*wrapper)
	}
	w := &wrapper{Base: part.NewBase(r), axis: axis, coord: coord}
	r.PutWrapper(axis.id, coord.PartID(), w)
	return w
}

// Label returns the wrapped axis's label.
func (w *wrapper) Label() string { return w.axis.Label() }

// Group returns the encoder group for the wrapped axis's kind.
func (w *wrapper) Group() part.Group { return w.axis.kind.group() }

// EncodeJSON renders the axis object, linking it back to its coordinate
// system by serial.
func (w *wrapper) EncodeJSON(dst []byte) []byte {
	dst = append(dst, `{"type":`...)
	dst = strconv.AppendQuote(dst, axisTypeName(w.axis.dataType))
	if w.axis.name != "" {
		dst = append(dst, `,"name":`...)
		dst = strconv.AppendQuote(dst, w.axis.name)
	}
	if w.axis.min != "" {
		dst = append(dst, `,"min":`...)
		dst = append(dst, w.axis.min...)
	}
	if w.axis.max != "" {
		dst = append(dst, `,"max":`...)
		dst = append(dst, w.axis.max...)
	}
	switch w.coord.(type) {
	case *Polar:
		dst = append(dst, `,"polarIndex":`...)
	default:
		dst = append(dst, `,"gridIndex":`...)
	}
	dst = strconv.AppendInt(dst, int64(w.coord.Serial()), 10)
	return append(dst, '}')
}

// axisTypeName maps a declared data type to the axis type understood by the
// rendering engine.
func axisTypeName(t data.Type) string {
	switch t {
	case data.TypeCategory:
		return "category"
	case data.TypeDate, data.TypeTime:
		return "time"
	default:
		return "value"
	}
}

// SetMin sets an explicit lower bound rendered into the axis object.
// The value must be a valid JSON scalar (number or quoted string).
func (a *Axis) SetMin(jsonScalar string) { a.min = jsonScalar }

// SetMax sets an explicit upper bound rendered into the axis object.
// The value must be a valid JSON scalar (number or quoted string).
func (a *Axis) SetMax(jsonScalar string) { a.max = jsonScalar }
