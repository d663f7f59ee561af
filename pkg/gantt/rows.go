package gantt

import (
	"strconv"
	"strings"
	"time"

	"github.com/syampillai/sochart/pkg/data"
)

// defaultPalette colors bars that carry no explicit color, cycling by row.
var defaultPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

const defaultFontSize = 12

// Completion returns the group's completion percentage: the duration
// weighted mean of its members. Milestones count as all or nothing.
func (g *TaskGroup) Completion() float64 {
	var total, done float64
	for _, t := range g.tasks {
		weight := float64(t.duration)
		if weight == 0 {
			weight = 1
		}
		pct := t.completion
		if t.Milestone() {
			pct = 0
			if t.Completed() {
				pct = 100
			}
		}
		total += weight
		done += weight * pct / 100
	}
	if total == 0 {
		return 0
	}
	return done / total * 100
}

// appendTime appends the time as a quoted string: a plain date for
// date-based units, a date-time otherwise.
func appendTime(dst []byte, t time.Time, u Unit) []byte {
	layout := data.TimeFormat
	if u.DateBased() {
		layout = data.DateFormat
	}
	dst = append(dst, '"')
	dst = t.AppendFormat(dst, layout)
	return append(dst, '"')
}

// renderOrder returns every rendered band top to bottom: each group followed
// by its tasks, both in display order. Nil when unvalidated.
func (p *Project) renderOrder() []Activity {
	groups := p.Groups()
	if groups == nil {
		return nil
	}
	var order []Activity
	for _, g := range groups {
		order = append(order, g)
		for _, t := range p.Tasks(g) {
			order = append(order, t)
		}
	}
	return order
}

func (a *nodeMeta) barColor(row int) string {
	if a.color != "" {
		return a.color
	}
	return defaultPalette[row%len(defaultPalette)]
}

func (a *nodeMeta) barFontSize() int {
	if a.fontSize > 0 {
		return a.fontSize
	}
	return defaultFontSize
}

// fillFor derives the translucent fill from the bar color.
func fillFor(color string) string {
	if len(color) == 7 && color[0] == '#' {
		return color + "66"
	}
	return color
}

func (p *Project) completionOf(a Activity) float64 {
	switch v := a.(type) {
	case *Task:
		if v.Milestone() {
			if v.Completed() {
				return 100
			}
			return 0
		}
		return v.completion
	case *TaskGroup:
		return v.Completion()
	}
	return 0
}

// ActivityRows renders one positional row per band:
//
//	[index, label, start, end, completion, color, stroke, fill, fontSize]
//
// Rows are JSON array fragments suitable for a [data.Rows] provider. Returns
// nil when the project has not been validated.
func (p *Project) ActivityRows() []string {
	order := p.renderOrder()
	if order == nil {
		return nil
	}
	rows := make([]string, 0, len(order))
	for i, a := range order {
		m := a.meta()
		color := m.barColor(i)

		row := strconv.AppendInt([]byte{'['}, int64(i), 10)
		row = append(row, ',')
		row = strconv.AppendQuote(row, a.Name())
		row = append(row, ',')
		row = appendTime(row, a.Start(), p.unit)
		row = append(row, ',')
		row = appendTime(row, a.End(), p.unit)
		row = append(row, ',')
		row = strconv.AppendFloat(row, p.completionOf(a), 'g', -1, 64)
		row = append(row, ',')
		row = strconv.AppendQuote(row, color)
		row = append(row, ',')
		row = strconv.AppendQuote(row, color)
		row = append(row, ',')
		row = strconv.AppendQuote(row, fillFor(color))
		row = append(row, ',')
		row = strconv.AppendInt(row, int64(m.barFontSize()), 10)
		rows = append(rows, string(append(row, ']')))
	}
	return rows
}

// DependencyRows renders one row per activity that other activities depend
// on:
//
//	[index, start, end, dependents]
//
// The dependents payload is a nested JSON fragment with every double quote
// replaced by a caret, so it travels as an ordinary string value inside the
// row. Returns nil when the project has not been validated.
func (p *Project) DependencyRows() []string {
	order := p.renderOrder()
	if order == nil {
		return nil
	}
	index := make(map[int64]int, len(order))
	for i, a := range order {
		index[a.ID()] = i
	}

	dependents := make(map[int64][]Activity)
	for _, a := range order {
		for _, pred := range a.meta().preds {
			dependents[pred.ID()] = append(dependents[pred.ID()], a)
		}
	}

	var rows []string
	for i, a := range order {
		deps := dependents[a.ID()]
		if len(deps) == 0 {
			continue
		}

		payload := []byte{'['}
		for j, d := range deps {
			if j > 0 {
				payload = append(payload, ',')
			}
			payload = append(payload, `{"index":`...)
			payload = strconv.AppendInt(payload, int64(index[d.ID()]), 10)
			payload = append(payload, `,"start":`...)
			payload = appendTime(payload, d.Start(), p.unit)
			payload = append(payload, '}')
		}
		payload = append(payload, ']')

		row := strconv.AppendInt([]byte{'['}, int64(i), 10)
		row = append(row, ',')
		row = appendTime(row, a.Start(), p.unit)
		row = append(row, ',')
		row = appendTime(row, a.End(), p.unit)
		row = append(row, ',')
		row = strconv.AppendQuote(row, strings.ReplaceAll(string(payload), `"`, "^"))
		rows = append(rows, string(append(row, ']')))
	}
	return rows
}

// LabelRows renders the per-band label table used by the renderer's axis
// hooks: [index, label, isGroup]. Returns nil when unvalidated.
func (p *Project) LabelRows() []string {
	order := p.renderOrder()
	if order == nil {
		return nil
	}
	rows := make([]string, 0, len(order))
	for i, a := range order {
		_, isGroup := a.(*TaskGroup)
		row := strconv.AppendInt([]byte{'['}, int64(i), 10)
		row = append(row, ',')
		row = strconv.AppendQuote(row, a.Name())
		row = append(row, ',')
		row = strconv.AppendBool(row, isGroup)
		rows = append(rows, string(append(row, ']')))
	}
	return rows
}
