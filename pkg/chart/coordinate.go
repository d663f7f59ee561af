package chart

import (
	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/errors"
	"github.com/syampillai/sochart/pkg/part"
)

// CoordinateSystem is a component that owns a list of axes and renders as a
// grid or polar object. Ownership of axes is not exclusive: the same axis
// instance may belong to several coordinate systems.
type CoordinateSystem interface {
	Component

	// Axes returns the coordinate system's axis list, in attachment order.
	Axes() []*Axis

	// ContainsAxis reports whether the axis belongs to this coordinate
	// system's axis list.
	ContainsAxis(a *Axis) bool
}

// Rectangular is a cartesian coordinate system (a grid with X and Y axes).
type Rectangular struct {
	part.Base
	reg  *part.Registry
	axes []*Axis
}

// NewRectangular creates a rectangular coordinate system over the given
// axes. Axes can be added later with AddAxis.
func NewRectangular(r *part.Registry, axes ...*Axis) *Rectangular {
	return &Rectangular{Base: part.NewBase(r), reg: r, axes: axes}
}

// AddAxis appends an axis to the coordinate system. Nil axes are ignored;
// adding the same axis twice is a no-op.
func (c *Rectangular) AddAxis(a *Axis) {
	if a == nil || c.ContainsAxis(a) {
		return
	}
	c.axes = append(c.axes, a)
}

// Axes returns the axis list in attachment order.
func (c *Rectangular) Axes() []*Axis { return c.axes }

// ContainsAxis reports whether a belongs to the coordinate system.
func (c *Rectangular) ContainsAxis(a *Axis) bool {
	for _, ax := range c.axes {
		if ax == a {
			return true
		}
	}
	return false
}

// Label identifies the coordinate system in error messages.
func (c *Rectangular) Label() string { return "rectangular coordinate" }

// Group returns the grid encoder group.
func (c *Rectangular) Group() part.Group { return part.GroupGrid }

// Validate checks that the coordinate system carries at least one X and one
// Y axis and that every axis has a rectangular role.
func (c *Rectangular) Validate() error {
	var haveX, haveY bool
	for _, a := range c.axes {
		switch a.Kind() {
		case AxisX:
			haveX = true
		case AxisY:
			haveY = true
		default:
			return errors.New(errors.ErrCodeInvalidInput,
				"%s cannot be attached to a rectangular coordinate", a.Label())
		}
	}
	if !haveX || !haveY {
		return errors.New(errors.ErrCodeInvalidInput,
			"rectangular coordinate needs an X-axis and a Y-axis")
	}
	return nil
}

// ValidateNumbered has no serial-dependent constraints for grids.
func (c *Rectangular) ValidateNumbered() error { return nil }

// CollectParts contributes one wrapper per attached axis.
func (c *Rectangular) CollectParts(add func(Encodable)) {
	for _, a := range c.axes {
		add(wrapperFor(c.reg, a, c))
	}
}

// DeclaredData returns nil; coordinate systems carry no data.
func (c *Rectangular) DeclaredData() []data.Provider { return nil }

// EncodeJSON renders the grid object.
func (c *Rectangular) EncodeJSON(dst []byte) []byte {
	return append(dst, `{"containLabel":true}`...)
}

// Polar is a polar coordinate system with an angle axis and a radius axis.
type Polar struct {
	part.Base
	reg  *part.Registry
	axes []*Axis
}

// NewPolar creates a polar coordinate system over the given axes.
func NewPolar(r *part.Registry, axes ...*Axis) *Polar {
	return &Polar{Base: part.NewBase(r), reg: r, axes: axes}
}

// AddAxis appends an axis to the coordinate system. Nil axes are ignored;
// adding the same axis twice is a no-op.
func (c *Polar) AddAxis(a *Axis) {
	if a == nil || c.ContainsAxis(a) {
		return
	}
	c.axes = append(c.axes, a)
}

// Axes returns the axis list in attachment order.
func (c *Polar) Axes() []*Axis { return c.axes }

// ContainsAxis reports whether a belongs to the coordinate system.
func (c *Polar) ContainsAxis(a *Axis) bool {
	for _, ax := range c.axes {
		if ax == a {
			return true
		}
	}
	return false
}

// Label identifies the coordinate system in error messages.
func (c *Polar) Label() string { return "polar coordinate" }

// Group returns the polar encoder group.
func (c *Polar) Group() part.Group { return part.GroupPolar }

// Validate checks that the coordinate system carries an angle axis and a
// radius axis and nothing else.
func (c *Polar) Validate() error {
	var haveAngle, haveRadius bool
	for _, a := range c.axes {
		switch a.Kind() {
		case AxisAngle:
			haveAngle = true
		case AxisRadius:
			haveRadius = true
		default:
			return errors.New(errors.ErrCodeInvalidInput,
				"%s cannot be attached to a polar coordinate", a.Label())
		}
	}
	if !haveAngle || !haveRadius {
		return errors.New(errors.ErrCodeInvalidInput,
			"polar coordinate needs an angle axis and a radius axis")
	}
	return nil
}

// ValidateNumbered has no serial-dependent constraints for polar grids.
func (c *Polar) ValidateNumbered() error { return nil }

// CollectParts contributes one wrapper per attached axis.
func (c *Polar) CollectParts(add func(Encodable)) {
	for _, a := range c.axes {
		add(wrapperFor(c.reg, a, c))
	}
}

// DeclaredData returns nil; coordinate systems carry no data.
func (c *Polar) DeclaredData() []data.Provider { return nil }

// EncodeJSON renders the polar object.
func (c *Polar) EncodeJSON(dst []byte) []byte {
	return append(dst, `{}`...)
}
