package part

import (
	"sync"
	"sync/atomic"
)

// Registry allocates part identities and owns the axis wrapper side table.
//
// The registry is an explicit dependency passed into constructors rather than
// ambient global state, so tests can create isolated registries and obtain
// reproducible identities. Identity allocation is atomic and therefore safe
// for concurrent use; everything else in this library assumes a single
// writer.
//
// The zero value is not usable - use NewRegistry.
type Registry struct {
	counter  atomic.Int64
	mu       sync.Mutex
	wrappers map[WrapperKey]any
}

// WrapperKey identifies one (axis, coordinate system) pairing in the wrapper
// side table.
type WrapperKey struct {
	AxisID       int64
	CoordinateID int64
}

// NewRegistry creates an empty registry. Identities start at 1; 0 is never
// a valid part identity.
func NewRegistry() *Registry {
	return &Registry{wrappers: make(map[WrapperKey]any)}
}

// NextID returns a fresh, process-unique, monotonically increasing identity.
func (r *Registry) NextID() int64 {
	return r.counter.Add(1)
}

// PutWrapper records the wrapper adapting the given axis for the given
// coordinate system. The side table is a lookup structure, not an ownership
// edge: one logical axis may be rendered inside several coordinate systems,
// each pairing holding its own wrapper and serial.
func (r *Registry) PutWrapper(axisID, coordinateID int64, w any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wrappers[WrapperKey{AxisID: axisID, CoordinateID: coordinateID}] = w
}

// Wrapper returns the wrapper for the (axis, coordinate system) pairing,
// or nil and false when none has been recorded.
func (r *Registry) Wrapper(axisID, coordinateID int64) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wrappers[WrapperKey{AxisID: axisID, CoordinateID: coordinateID}]
	return w, ok
}

// WrappersOf returns all wrappers recorded for the given axis, across every
// coordinate system that uses it.
func (r *Registry) WrappersOf(axisID int64) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for k, w := range r.wrappers {
		if k.AxisID == axisID {
			out = append(out, w)
		}
	}
	return out
}

// DropWrappers removes every wrapper recorded for the given axis. Called when
// an axis is detached from the part graph.
func (r *Registry) DropWrappers(axisID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.wrappers {
		if k.AxisID == axisID {
			delete(r.wrappers, k)
		}
	}
}
