// Package manifest loads chart descriptions from TOML files.
//
// A manifest describes a complete task chart declaratively: the project
// start and unit, the task groups with their tasks and dependencies, and
// the decoration around the chart (title, legend, toolbox, palette). The
// CLI and the preview server both build their boards from manifests, so a
// chart definition can live next to the project it tracks.
package manifest

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/syampillai/sochart/pkg/chart"
	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/errors"
	"github.com/syampillai/sochart/pkg/gantt"
	"github.com/syampillai/sochart/pkg/part"
)

// Manifest is the top-level TOML document.
type Manifest struct {
	Title   string  `toml:"title"`
	Board   string  `toml:"board"`
	Project Project `toml:"project"`
	Groups  []Group `toml:"group"`
	Decor   Decor   `toml:"decor"`
}

// Project carries the scheduling parameters.
type Project struct {
	Start string `toml:"start"` // ISO date, or date-time for sub-day units
	Unit  string `toml:"unit"`  // millisecond, second, minute, hour, day
}

// Group is one task group with its member tasks.
type Group struct {
	Name    string   `toml:"name"`
	Order   int      `toml:"order"`
	Depends []string `toml:"depends"`
	Tasks   []Task   `toml:"task"`
}

// Task is one unit of work. A zero duration marks a milestone.
type Task struct {
	Name       string   `toml:"name"`
	Duration   int      `toml:"duration"`
	Completion float64  `toml:"completion"`
	Color      string   `toml:"color"`
	Order      int      `toml:"order"`
	Depends    []string `toml:"depends"`
	Earliest   string   `toml:"earliest"`
}

// Decor selects the supporting parts around the chart.
type Decor struct {
	Legend  bool     `toml:"legend"`
	Toolbox []string `toml:"toolbox"`
	Colors  []string `toml:"colors"`
}

var units = map[string]gantt.Unit{
	"millisecond": gantt.Millisecond,
	"second":      gantt.Second,
	"minute":      gantt.Minute,
	"hour":        gantt.Hour,
	"day":         gantt.Day,
	"":            gantt.Day,
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "reading %s", path)
	}
	return Decode(raw)
}

// Decode decodes a manifest from raw TOML.
func Decode(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decoding manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if _, ok := units[m.Project.Unit]; !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "unknown unit %q", m.Project.Unit)
	}
	if m.Project.Start == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "project.start is required")
	}
	if _, err := parseWhen(m.Project.Start); err != nil {
		return err
	}
	if len(m.Groups) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "at least one group is required")
	}
	seen := map[string]bool{}
	for _, g := range m.Groups {
		if err := errors.ValidateName(g.Name); err != nil {
			return err
		}
		if seen[g.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate name %q", g.Name)
		}
		seen[g.Name] = true
		for _, t := range g.Tasks {
			if err := errors.ValidateName(t.Name); err != nil {
				return err
			}
			if seen[t.Name] {
				return errors.New(errors.ErrCodeInvalidManifest, "duplicate name %q", t.Name)
			}
			seen[t.Name] = true
			if t.Duration < 0 {
				return errors.New(errors.ErrCodeInvalidManifest,
					"task %q has negative duration", t.Name)
			}
		}
	}
	return nil
}

func parseWhen(s string) (time.Time, error) {
	for _, layout := range []string{data.DateFormat, data.TimeFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidManifest, "cannot parse time %q", s)
}

// Build materializes the manifest into a part graph: the project, its chart
// and the declared decoration. The returned components are ready to hand to
// a board.
func (m *Manifest) Build(r *part.Registry) (*gantt.Project, []chart.Component, error) {
	start, err := parseWhen(m.Project.Start)
	if err != nil {
		return nil, nil, err
	}

	p := gantt.NewProject(r, units[m.Project.Unit])
	p.SetStart(start)

	// Two passes: create every activity first, then resolve dependency
	// names across the whole manifest.
	byName := map[string]gantt.Activity{}
	for _, gm := range m.Groups {
		g := p.NewTaskGroup(gm.Name)
		g.SetOrder(gm.Order)
		byName[gm.Name] = g
		for _, tm := range gm.Tasks {
			t := p.NewTask(g, tm.Name, tm.Duration)
			t.SetCompletion(tm.Completion)
			t.SetOrder(tm.Order)
			if tm.Color != "" {
				t.SetColor(tm.Color)
			}
			if tm.Earliest != "" {
				when, err := parseWhen(tm.Earliest)
				if err != nil {
					return nil, nil, err
				}
				p.SetEarliestStart(t, when)
			}
			byName[tm.Name] = t
		}
	}
	for _, gm := range m.Groups {
		if err := link(p, byName, gm.Name, gm.Depends); err != nil {
			return nil, nil, err
		}
		for _, tm := range gm.Tasks {
			if err := link(p, byName, tm.Name, tm.Depends); err != nil {
				return nil, nil, err
			}
		}
	}

	comps := []chart.Component{gantt.NewProjectChart(r, p)}
	if m.Title != "" {
		comps = append(comps, chart.NewTitle(r, m.Title))
	}
	if m.Decor.Legend {
		comps = append(comps, chart.NewLegend(r))
	}
	if len(m.Decor.Toolbox) > 0 {
		comps = append(comps, chart.NewToolbox(r, m.Decor.Toolbox...))
	}
	if len(m.Decor.Colors) > 0 {
		comps = append(comps, chart.NewColorSet(r, m.Decor.Colors...))
	}
	return p, comps, nil
}

func link(p *gantt.Project, byName map[string]gantt.Activity, name string, depends []string) error {
	dependent := byName[name]
	for _, dep := range depends {
		pred, ok := byName[dep]
		if !ok {
			return errors.New(errors.ErrCodeInvalidManifest,
				"%q depends on unknown activity %q", name, dep)
		}
		p.DependsOn(dependent, pred)
	}
	return nil
}
