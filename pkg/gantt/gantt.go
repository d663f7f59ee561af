// Package gantt implements the task model and constraint scheduler behind
// task-oriented charts.
//
// A [Project] owns an ordered list of task groups; groups own tasks. Tasks
// and groups may declare predecessors (tasks or groups they cannot start
// before), and optional earliest-start floors. [Project.ValidateConstraints]
// detects circular dependencies - including the implicit edges between a
// task and its own group - and then propagates start-time constraints to a
// fixed point, producing a consistent schedule.
//
// Scheduling results are read through the soft-failure accessors
// ([Project.Groups], [Project.Tasks], [Project.Dependencies]) and through
// the row encodings in rows.go that feed the chart rendering. The accessors
// return nil when the project has not been validated since its last
// mutation; only ValidateConstraints itself reports errors.
package gantt

import (
	"time"

	"github.com/syampillai/sochart/pkg/part"
)

// Unit is the duration unit of a project. All task durations and dependency
// gaps are expressed in this unit.
type Unit int

const (
	// Millisecond-resolution scheduling.
	Millisecond Unit = iota
	// Second-resolution scheduling.
	Second
	// Minute-resolution scheduling.
	Minute
	// Hour-resolution scheduling.
	Hour
	// Day-resolution scheduling. Day is the only date-based unit: time
	// values are encoded as ISO dates instead of date-time strings.
	Day
)

var unitDurations = map[Unit]time.Duration{
	Millisecond: time.Millisecond,
	Second:      time.Second,
	Minute:      time.Minute,
	Hour:        time.Hour,
	Day:         24 * time.Hour,
}

// Duration returns the length of one unit.
func (u Unit) Duration() time.Duration { return unitDurations[u] }

// DateBased reports whether time values of this unit encode as plain dates.
func (u Unit) DateBased() bool { return u == Day }

// Activity is a node of the dependency graph: either a *Task or a
// *TaskGroup.
type Activity interface {
	// ID returns the permanent identity of the activity.
	ID() int64

	// Name returns the display name.
	Name() string

	// Start returns the scheduled start time. Meaningful only after
	// ValidateConstraints has succeeded.
	Start() time.Time

	// End returns the scheduled end time: start plus duration.
	End() time.Time

	// DurationUnits returns the duration in project units. Groups derive
	// their duration from the span of their members.
	DurationUnits() int

	// Completed reports whether the activity is complete.
	Completed() bool

	// meta returns the shared mutable node state.
	meta() *nodeMeta
}

// nodeMeta is the state shared by tasks and groups.
type nodeMeta struct {
	id         int64
	name       string
	start      time.Time
	duration   int // in project units; 0 for a task means milestone
	completion float64
	color      string
	fontSize   int
	order      int // manual display order, breaks start-time ties
	preds      []Activity
	earliest   time.Time // zero means no floor
}

func (m *nodeMeta) ID() int64       { return m.id }
func (m *nodeMeta) Name() string    { return m.name }
func (m *nodeMeta) meta() *nodeMeta { return m }

// SetColor assigns an explicit bar color for the rendered rows.
func (m *nodeMeta) SetColor(color string) { m.color = color }

// SetFontSize assigns an explicit label font size for the rendered rows.
func (m *nodeMeta) SetFontSize(size int) { m.fontSize = size }

// SetOrder sets the manual display order used to break start-time ties when
// sorting groups (and tasks within a group) for display.
func (m *nodeMeta) SetOrder(order int) { m.order = order }

// Task is a leaf unit of work. A task with zero duration is a milestone;
// milestones have special dependency-gap and completion semantics.
type Task struct {
	nodeMeta
	group *TaskGroup
}

// Start returns the scheduled start time.
func (t *Task) Start() time.Time { return t.start }

// End returns start plus duration. A milestone's end equals its start.
func (t *Task) End() time.Time { return t.end() }

// DurationUnits returns the task duration in project units.
func (t *Task) DurationUnits() int { return t.duration }

// Milestone reports whether the task has zero duration.
func (t *Task) Milestone() bool { return t.duration == 0 }

// Group returns the task's owning group.
func (t *Task) Group() *TaskGroup { return t.group }

// SetCompletion sets the completion percentage, clamped to [0,100].
// Milestone completion is derived from predecessors; setting it directly
// has no effect on Completed.
func (t *Task) SetCompletion(percent float64) {
	t.completion = min(100, max(0, percent))
}

// Completion returns the completion percentage.
func (t *Task) Completion() float64 { return t.completion }

// Completed reports whether the task is complete. A milestone is complete
// when all of its predecessors are complete.
func (t *Task) Completed() bool {
	if t.Milestone() {
		for _, p := range t.preds {
			if !p.Completed() {
				return false
			}
		}
		return true
	}
	return t.completion >= 100
}

func (t *Task) end() time.Time {
	return t.start.Add(time.Duration(t.duration) * t.group.project.unit.Duration())
}

// TaskGroup is a composite activity. Its start, end and duration derive from
// its members; a group that is empty at validation time is pruned.
type TaskGroup struct {
	nodeMeta
	tasks   []*Task
	project *Project
}

// Start returns the derived start: the earliest member start.
func (g *TaskGroup) Start() time.Time { return g.start }

// End returns the derived end: the latest member end.
func (g *TaskGroup) End() time.Time {
	return g.start.Add(time.Duration(g.duration) * g.project.unit.Duration())
}

// DurationUnits returns the derived span covering all members.
func (g *TaskGroup) DurationUnits() int { return g.duration }

// Completed reports whether every member task is complete.
func (g *TaskGroup) Completed() bool {
	for _, t := range g.tasks {
		if !t.Completed() {
			return false
		}
	}
	return true
}

// Project owns the task groups, the global start time and the duration
// unit. The validation result is cached: repeated calls to
// ValidateConstraints are no-ops until the next structural mutation.
type Project struct {
	reg     *part.Registry
	unit    Unit
	start   time.Time
	groups  []*TaskGroup // newest first
	checked bool
}

// NewProject creates an empty project scheduled in the given unit.
func NewProject(r *part.Registry, unit Unit) *Project {
	return &Project{reg: r, unit: unit}
}

// Unit returns the project's duration unit.
func (p *Project) Unit() Unit { return p.unit }

// Start returns the project start time.
func (p *Project) Start() time.Time { return p.start }

// SetStart sets the global start time. Every activity starts at or after
// this instant.
func (p *Project) SetStart(t time.Time) {
	p.start = t
	p.checked = false
}

// NewTaskGroup creates a group and prepends it to the project: the newest
// group comes first in iteration order.
func (p *Project) NewTaskGroup(name string) *TaskGroup {
	g := &TaskGroup{
		nodeMeta: nodeMeta{id: p.reg.NextID(), name: name},
		project:  p,
	}
	p.groups = append([]*TaskGroup{g}, p.groups...)
	p.checked = false
	return g
}

// NewTask creates a task inside the given group. Returns nil if the group is
// nil or does not belong to this project. Duration must be non-negative;
// zero marks a milestone.
func (p *Project) NewTask(g *TaskGroup, name string, duration int) *Task {
	if g == nil || g.project != p || duration < 0 {
		return nil
	}
	t := &Task{
		nodeMeta: nodeMeta{id: p.reg.NextID(), name: name, duration: duration},
		group:    g,
	}
	g.tasks = append(g.tasks, t)
	p.checked = false
	return t
}

// DependsOn records that dependent cannot start before predecessor finishes.
// Nil arguments and duplicate edges are ignored. Cycles are not checked
// here; detection is deferred to ValidateConstraints.
func (p *Project) DependsOn(dependent, predecessor Activity) {
	if dependent == nil || predecessor == nil || dependent == predecessor {
		return
	}
	m := dependent.meta()
	for _, existing := range m.preds {
		if existing == predecessor {
			return
		}
	}
	m.preds = append(m.preds, predecessor)
	p.checked = false
}

// SetEarliestStart attaches an earliest-start floor to the activity,
// independent of any dependency-derived start.
func (p *Project) SetEarliestStart(a Activity, t time.Time) {
	if a == nil {
		return
	}
	a.meta().earliest = t
	p.checked = false
}

// ClearEarliestStart removes the activity's earliest-start floor.
func (p *Project) ClearEarliestStart(a Activity) {
	if a == nil {
		return
	}
	a.meta().earliest = time.Time{}
	p.checked = false
}

// Delete removes the activity from the project and strips it from every
// other activity's predecessor list. Deleting a group cascades to its
// member tasks.
func (p *Project) Delete(a Activity) {
	switch v := a.(type) {
	case *Task:
		p.deleteTask(v)
	case *TaskGroup:
		for _, t := range v.tasks {
			p.stripPredecessor(t)
		}
		v.tasks = nil
		p.stripPredecessor(v)
		for i, g := range p.groups {
			if g == v {
				p.groups = append(p.groups[:i], p.groups[i+1:]...)
				break
			}
		}
	default:
		return
	}
	p.checked = false
}

func (p *Project) deleteTask(t *Task) {
	g := t.group
	for i, member := range g.tasks {
		if member == t {
			g.tasks = append(g.tasks[:i], g.tasks[i+1:]...)
			break
		}
	}
	p.stripPredecessor(t)
}

// stripPredecessor removes a from every predecessor list in the project.
func (p *Project) stripPredecessor(a Activity) {
	strip := func(m *nodeMeta) {
		for i := 0; i < len(m.preds); i++ {
			if m.preds[i] == a {
				m.preds = append(m.preds[:i], m.preds[i+1:]...)
				i--
			}
		}
	}
	for _, g := range p.groups {
		strip(&g.nodeMeta)
		for _, t := range g.tasks {
			strip(&t.nodeMeta)
		}
	}
}

// Contains reports whether the activity belongs to this project.
func (p *Project) Contains(a Activity) bool {
	switch v := a.(type) {
	case *Task:
		return v.group != nil && v.group.project == p
	case *TaskGroup:
		return v.project == p
	}
	return false
}
