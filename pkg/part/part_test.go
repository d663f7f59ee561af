package part

import (
	"testing"

	"github.com/syampillai/sochart/pkg/errors"
)

func TestRegistryIdentities(t *testing.T) {
	r := NewRegistry()

	a := NewBase(r)
	b := NewBase(r)

	if a.PartID() == b.PartID() {
		t.Fatalf("identities must be unique, both = %d", a.PartID())
	}
	if a.PartID() <= 0 || b.PartID() <= 0 {
		t.Errorf("identities must be positive: %d, %d", a.PartID(), b.PartID())
	}
	if b.PartID() <= a.PartID() {
		t.Errorf("identities must be monotonic: %d then %d", a.PartID(), b.PartID())
	}

	// A fresh registry restarts numbering - registries are isolated.
	r2 := NewRegistry()
	c := NewBase(r2)
	if c.PartID() != 1 {
		t.Errorf("fresh registry should start at 1, got %d", c.PartID())
	}
}

func TestSerialContract(t *testing.T) {
	r := NewRegistry()
	b := NewBase(r)

	if b.Serial() != SerialUnassigned {
		t.Fatalf("new part serial = %d, want %d", b.Serial(), SerialUnassigned)
	}

	if err := b.AssignSerial(3); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if b.Serial() != 3 {
		t.Errorf("serial = %d, want 3", b.Serial())
	}

	// Renumbering without a reset is a contract violation, even to the
	// same value.
	if err := b.AssignSerial(3); !errors.IsContract(err) {
		t.Errorf("renumber to same value: got %v, want ContractError", err)
	}
	if err := b.AssignSerial(4); !errors.IsContract(err) {
		t.Errorf("renumber to new value: got %v, want ContractError", err)
	}
	if b.Serial() != 3 {
		t.Errorf("failed renumber must not change serial, got %d", b.Serial())
	}

	b.ResetSerial()
	if b.Serial() != SerialUnassigned {
		t.Errorf("after reset serial = %d, want %d", b.Serial(), SerialUnassigned)
	}
	if err := b.AssignSerial(0); err != nil {
		t.Errorf("assignment after reset: %v", err)
	}
}

func TestSerialContractShared(t *testing.T) {
	r := NewRegistry()
	b := NewSharedBase(r)

	if err := b.AssignSerial(2); err != nil {
		t.Fatalf("first assignment: %v", err)
	}

	// Shared parts tolerate re-assignment to the same serial (dedup), but
	// not to a different one.
	if err := b.AssignSerial(2); err != nil {
		t.Errorf("shared re-assignment to same serial: %v", err)
	}
	if err := b.AssignSerial(5); !errors.IsContract(err) {
		t.Errorf("shared re-assignment to new serial: got %v, want ContractError", err)
	}
}

func TestAssignSerialRejectsNegative(t *testing.T) {
	r := NewRegistry()
	b := NewBase(r)
	if err := b.AssignSerial(-2); !errors.IsContract(err) {
		t.Errorf("negative serial: got %v, want ContractError", err)
	}
}

func TestWrapperSideTable(t *testing.T) {
	r := NewRegistry()

	type wrapper struct{ tag string }
	w1 := &wrapper{"first"}
	w2 := &wrapper{"second"}

	r.PutWrapper(10, 100, w1)
	r.PutWrapper(10, 200, w2)

	if got, ok := r.Wrapper(10, 100); !ok || got != w1 {
		t.Errorf("Wrapper(10,100) = %v, %v", got, ok)
	}
	if got, ok := r.Wrapper(10, 200); !ok || got != w2 {
		t.Errorf("Wrapper(10,200) = %v, %v", got, ok)
	}
	if _, ok := r.Wrapper(10, 300); ok {
		t.Error("unexpected wrapper for unknown coordinate")
	}

	if got := len(r.WrappersOf(10)); got != 2 {
		t.Errorf("WrappersOf(10) = %d entries, want 2", got)
	}

	r.DropWrappers(10)
	if got := len(r.WrappersOf(10)); got != 0 {
		t.Errorf("after DropWrappers: %d entries, want 0", got)
	}
}

func TestGroupKeys(t *testing.T) {
	if GroupSeries.Key() != "series" {
		t.Errorf("GroupSeries.Key() = %q", GroupSeries.Key())
	}
	if GroupXAxis.Key() != "xAxis" {
		t.Errorf("GroupXAxis.Key() = %q", GroupXAxis.Key())
	}
	if GroupNone.Key() != "" {
		t.Errorf("GroupNone.Key() = %q, want empty", GroupNone.Key())
	}

	if !GroupColor.SelfRendering() || !GroupTextStyle.SelfRendering() {
		t.Error("color and textStyle groups must be self-rendering")
	}
	if GroupSeries.SelfRendering() {
		t.Error("series group must not be self-rendering")
	}

	seen := map[string]Group{}
	for _, g := range Groups() {
		key := g.Key()
		if key == "" {
			t.Errorf("group %d has no key", g)
		}
		if prev, dup := seen[key]; dup {
			t.Errorf("key %q shared by groups %d and %d", key, prev, g)
		}
		seen[key] = g
	}
}
