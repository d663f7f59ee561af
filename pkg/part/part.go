// Package part defines the identity and serial-numbering contracts shared by
// every chart part.
//
// Every part carries two numbers with very different lifetimes:
//
//   - The identity (a 64-bit integer) is assigned once at construction by a
//     [Registry] and never changes. It is used for equality, map keys and
//     long-lived references such as data-source keys in the emitted document.
//   - The serial is the part's 0-based position within its encoder group for
//     the current update cycle only. It is reset to [SerialUnassigned] at the
//     start of every cycle and reassigned during numbering; it must never be
//     treated as a stable identity.
//
// Parts embed [Base] to satisfy the [Part] contract. Parts that participate
// in de-duplication (data providers shared by several components) embed a
// Base created with [NewSharedBase], which tolerates re-assignment to the
// same serial within a cycle; for all other parts a second assignment is a
// contract violation surfaced as *errors.ContractError.
package part

import (
	"github.com/syampillai/sochart/pkg/errors"
)

// SerialUnassigned is the sentinel serial value a part reports between the
// serial reset at the start of an update cycle and its numbering.
const SerialUnassigned = -1

// Part is the contract every chart part satisfies. Embed [Base] to implement
// it; only Label needs to be provided by the part itself.
type Part interface {
	// PartID returns the permanent process-wide identity of the part.
	PartID() int64

	// Serial returns the part's position within its encoder group for the
	// current update cycle, or SerialUnassigned before numbering.
	Serial() int

	// AssignSerial numbers the part for the current cycle. Assigning a part
	// that already holds a serial is a contract violation, except for shared
	// parts re-assigned to the same value.
	AssignSerial(n int) error

	// ResetSerial returns the serial to SerialUnassigned. Called by the
	// update pipeline at the start of every cycle.
	ResetSerial()

	// Label returns a human-readable locator for error messages: the part's
	// user-assigned name if it has one, otherwise its kind.
	Label() string
}

// Base carries the identity and serial state for a part. The zero value is
// not usable; construct with [NewBase] or [NewSharedBase].
type Base struct {
	id     int64
	serial int
	shared bool
}

// NewBase allocates a fresh identity from the registry and returns a Base
// with an unassigned serial.
func NewBase(r *Registry) Base {
	return Base{id: r.NextID(), serial: SerialUnassigned}
}

// NewSharedBase is like NewBase but marks the part as a de-duplication
// participant: re-assigning the same serial within a cycle is not an error.
// Data providers use this, since several components may declare the same
// provider instance.
func NewSharedBase(r *Registry) Base {
	b := NewBase(r)
	b.shared = true
	return b
}

// PartID returns the permanent identity assigned at construction.
func (b *Base) PartID() int64 { return b.id }

// Serial returns the current-cycle serial, or SerialUnassigned.
func (b *Base) Serial() int { return b.serial }

// AssignSerial numbers the part for the current cycle.
// Negative serials are rejected; SerialUnassigned can only be restored via
// ResetSerial.
func (b *Base) AssignSerial(n int) error {
	if n < 0 {
		return errors.Contract("", "serial must be non-negative, got %d", n)
	}
	if b.serial != SerialUnassigned {
		if b.shared && b.serial == n {
			return nil
		}
		return errors.Contract("", "serial already assigned (%d), refusing to renumber to %d", b.serial, n)
	}
	b.serial = n
	return nil
}

// ResetSerial returns the serial to the unassigned sentinel.
func (b *Base) ResetSerial() { b.serial = SerialUnassigned }
