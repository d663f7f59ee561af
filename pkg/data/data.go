// Package data defines the data providers that feed chart series.
//
// A provider supplies a sequence of values plus a declared value type. During
// an update cycle every provider referenced by the part graph receives its
// own serial and its content is transmitted once, independently of the
// components that reference it: two series declaring the same provider
// instance share one entry in the emitted dataset.
//
// Providers marked internal are used purely server-side for composition
// (for example the helper bands behind a task chart); they still receive
// serials but are never transmitted to the client.
package data

import (
	"strconv"
	"time"

	"github.com/syampillai/sochart/pkg/part"
)

// Type is the declared value type of a provider.
type Type int

const (
	// TypeCategory holds discrete string values.
	TypeCategory Type = iota
	// TypeNumber holds numeric values.
	TypeNumber
	// TypeDate holds calendar dates, encoded as quoted ISO dates.
	TypeDate
	// TypeTime holds timestamps, encoded as quoted date-time strings.
	TypeTime
	// TypeObject holds pre-composed positional rows (task charts).
	TypeObject
)

var typeNames = map[Type]string{
	TypeCategory: "category",
	TypeNumber:   "number",
	TypeDate:     "date",
	TypeTime:     "time",
	TypeObject:   "object",
}

// String returns the lowercase name of the type.
func (t Type) String() string { return typeNames[t] }

// DateFormat is the encoding layout for TypeDate values.
const DateFormat = "2006-01-02"

// TimeFormat is the encoding layout for TypeTime values.
const TimeFormat = "2006-01-02 15:04:05"

// Provider is a serial-bearing part that supplies chart data.
type Provider interface {
	part.Part

	// DataType returns the declared value type.
	DataType() Type

	// AppendJSON appends the provider's content as a JSON array to dst and
	// returns the extended slice.
	AppendJSON(dst []byte) []byte

	// Internal reports whether the provider is server-side only: numbered
	// during an update cycle but never transmitted.
	Internal() bool

	// Len returns the number of values.
	Len() int
}

// common carries the state shared by all provider implementations.
type common struct {
	part.Base
	name     string
	typ      Type
	internal bool
}

func newCommon(r *part.Registry, typ Type) common {
	return common{Base: part.NewSharedBase(r), typ: typ}
}

// DataType returns the declared value type.
func (c *common) DataType() Type { return c.typ }

// Internal reports whether the provider is server-side only.
func (c *common) Internal() bool { return c.internal }

// MarkInternal excludes the provider from transmission. It still receives a
// serial during numbering.
func (c *common) MarkInternal() { c.internal = true }

// SetName assigns a display name used in error messages.
func (c *common) SetName(name string) { c.name = name }

// Label returns the provider's name, or its value type when unnamed.
func (c *common) Label() string {
	if c.name != "" {
		return c.name
	}
	return "data(" + c.typ.String() + ")"
}

// Numbers is a numeric data provider.
type Numbers struct {
	common
	values []float64
}

// NewNumbers creates a numeric provider with the given initial values.
func NewNumbers(r *part.Registry, values ...float64) *Numbers {
	return &Numbers{common: newCommon(r, TypeNumber), values: values}
}

// Add appends values to the provider.
func (n *Numbers) Add(values ...float64) { n.values = append(n.values, values...) }

// Values returns the underlying slice. The slice is not copied.
func (n *Numbers) Values() []float64 { return n.values }

// Len returns the number of values.
func (n *Numbers) Len() int { return len(n.values) }

// AppendJSON appends the values as a JSON array of numbers.
func (n *Numbers) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, v := range n.values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
	}
	return append(dst, ']')
}

// Categories is a discrete string data provider.
type Categories struct {
	common
	values []string
}

// NewCategories creates a category provider with the given initial values.
func NewCategories(r *part.Registry, values ...string) *Categories {
	return &Categories{common: newCommon(r, TypeCategory), values: values}
}

// Add appends values to the provider.
func (c *Categories) Add(values ...string) { c.values = append(c.values, values...) }

// Values returns the underlying slice. The slice is not copied.
func (c *Categories) Values() []string { return c.values }

// Len returns the number of values.
func (c *Categories) Len() int { return len(c.values) }

// AppendJSON appends the values as a JSON array of strings.
func (c *Categories) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, v := range c.values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendQuote(dst, v)
	}
	return append(dst, ']')
}

// Dates is a calendar-date data provider. Values are encoded as quoted ISO
// dates without a time component.
type Dates struct {
	common
	values []time.Time
}

// NewDates creates a date provider with the given initial values.
func NewDates(r *part.Registry, values ...time.Time) *Dates {
	return &Dates{common: newCommon(r, TypeDate), values: values}
}

// Add appends values to the provider.
func (d *Dates) Add(values ...time.Time) { d.values = append(d.values, values...) }

// Values returns the underlying slice. The slice is not copied.
func (d *Dates) Values() []time.Time { return d.values }

// Len returns the number of values.
func (d *Dates) Len() int { return len(d.values) }

// AppendJSON appends the values as a JSON array of quoted ISO dates.
func (d *Dates) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, v := range d.values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '"')
		dst = v.AppendFormat(dst, DateFormat)
		dst = append(dst, '"')
	}
	return append(dst, ']')
}

// Times is a timestamp data provider. Values are encoded as quoted date-time
// strings.
type Times struct {
	common
	values []time.Time
}

// NewTimes creates a timestamp provider with the given initial values.
func NewTimes(r *part.Registry, values ...time.Time) *Times {
	return &Times{common: newCommon(r, TypeTime), values: values}
}

// Add appends values to the provider.
func (t *Times) Add(values ...time.Time) { t.values = append(t.values, values...) }

// Values returns the underlying slice. The slice is not copied.
func (t *Times) Values() []time.Time { return t.values }

// Len returns the number of values.
func (t *Times) Len() int { return len(t.values) }

// AppendJSON appends the values as a JSON array of quoted date-time strings.
func (t *Times) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, v := range t.values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '"')
		dst = v.AppendFormat(dst, TimeFormat)
		dst = append(dst, '"')
	}
	return append(dst, ']')
}

// Rows is a provider of pre-composed positional rows: each value is a
// complete JSON fragment, typically an array. Task charts use Rows for their
// activity and dependency bands.
type Rows struct {
	common
	values []string
}

// NewRows creates a row provider with the given initial rows. Each row must
// be a well-formed JSON fragment.
func NewRows(r *part.Registry, rows ...string) *Rows {
	return &Rows{common: newCommon(r, TypeObject), values: rows}
}

// Add appends rows to the provider.
func (w *Rows) Add(rows ...string) { w.values = append(w.values, rows...) }

// Replace swaps the provider's content. Used by adapters that regenerate
// their rows from a freshly scheduled source before every update.
func (w *Rows) Replace(rows []string) { w.values = rows }

// Values returns the underlying slice. The slice is not copied.
func (w *Rows) Values() []string { return w.values }

// Len returns the number of rows.
func (w *Rows) Len() int { return len(w.values) }

// AppendJSON appends the rows as a JSON array, each row inlined verbatim.
func (w *Rows) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, v := range w.values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, v...)
	}
	return append(dst, ']')
}
