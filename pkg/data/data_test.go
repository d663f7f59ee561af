package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/syampillai/sochart/pkg/part"
)

func TestAppendJSON(t *testing.T) {
	r := part.NewRegistry()
	day := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		p    Provider
		want string
	}{
		{
			name: "Numbers",
			p:    NewNumbers(r, 1, 2.5, -3),
			want: `[1,2.5,-3]`,
		},
		{
			name: "NumbersEmpty",
			p:    NewNumbers(r),
			want: `[]`,
		},
		{
			name: "Categories",
			p:    NewCategories(r, "a", "b c", `with "quotes"`),
			want: `["a","b c","with \"quotes\""]`,
		},
		{
			name: "Dates",
			p:    NewDates(r, day, day.AddDate(0, 0, 1)),
			want: `["2026-03-14","2026-03-15"]`,
		},
		{
			name: "Times",
			p:    NewTimes(r, day),
			want: `["2026-03-14 09:26:53"]`,
		},
		{
			name: "Rows",
			p:    NewRows(r, `[0,"A",5]`, `[1,"B",3]`),
			want: `[[0,"A",5],[1,"B",3]]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(tt.p.AppendJSON(nil))
			if got != tt.want {
				t.Errorf("AppendJSON = %s, want %s", got, tt.want)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("AppendJSON produced invalid JSON: %s", got)
			}
		})
	}
}

func TestProviderTypes(t *testing.T) {
	r := part.NewRegistry()

	tests := []struct {
		p    Provider
		want Type
	}{
		{NewNumbers(r), TypeNumber},
		{NewCategories(r), TypeCategory},
		{NewDates(r), TypeDate},
		{NewTimes(r), TypeTime},
		{NewRows(r), TypeObject},
	}

	for _, tt := range tests {
		if got := tt.p.DataType(); got != tt.want {
			t.Errorf("DataType = %v, want %v", got, tt.want)
		}
	}
}

func TestProviderIdentityAndDedup(t *testing.T) {
	r := part.NewRegistry()
	p := NewNumbers(r, 1, 2, 3)
	q := NewNumbers(r, 1, 2, 3)

	if p.PartID() == q.PartID() {
		t.Error("distinct providers must have distinct identities")
	}

	// Providers are shared parts: re-assignment to the same serial is the
	// dedup path, not an error.
	if err := p.AssignSerial(2); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := p.AssignSerial(2); err != nil {
		t.Errorf("dedup re-assignment: %v", err)
	}
}

func TestInternalProviders(t *testing.T) {
	r := part.NewRegistry()
	p := NewRows(r, `[0]`)
	if p.Internal() {
		t.Error("providers are transmitted by default")
	}
	p.MarkInternal()
	if !p.Internal() {
		t.Error("MarkInternal should exclude the provider from transmission")
	}
}

func TestLabel(t *testing.T) {
	r := part.NewRegistry()

	p := NewCategories(r, "x")
	if got := p.Label(); got != "data(category)" {
		t.Errorf("unnamed label = %q", got)
	}
	p.SetName("weekdays")
	if got := p.Label(); got != "weekdays" {
		t.Errorf("named label = %q", got)
	}
}

func TestAdd(t *testing.T) {
	r := part.NewRegistry()

	n := NewNumbers(r, 1)
	n.Add(2, 3)
	if n.Len() != 3 {
		t.Errorf("Len = %d, want 3", n.Len())
	}

	w := NewRows(r, `[0]`)
	w.Replace([]string{`[1]`, `[2]`})
	if got := string(w.AppendJSON(nil)); got != `[[1],[2]]` {
		t.Errorf("after Replace: %s", got)
	}
}
