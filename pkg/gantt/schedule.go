package gantt

import (
	"sort"
	"time"

	"github.com/syampillai/sochart/pkg/errors"
	"github.com/syampillai/sochart/pkg/observability"
)

// Dependency is one explicit predecessor edge, read through
// [Project.Dependencies] after validation.
type Dependency struct {
	Dependent   Activity
	Predecessor Activity
}

// visitState tracks DFS progress during cycle detection.
type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// ValidateConstraints validates the dependency graph and schedules every
// activity. It fails when the project start is unset or when the predecessor
// relation is cyclic; the cycle check includes the implicit edges between a
// task and its own group (a group cannot depend, even transitively, on one
// of its own members).
//
// On success the schedule is committed to the activities and cached; the
// cache is invalidated by any mutation. Empty groups are pruned.
func (p *Project) ValidateConstraints() error {
	if p.checked {
		return nil
	}
	hooks := observability.Schedule()
	hooks.OnStart(p.activityCount())

	if p.start.IsZero() {
		err := errors.New(errors.ErrCodeStartUnset, "project start is not set")
		hooks.OnDone(0, err)
		return err
	}

	p.pruneEmptyGroups()

	if err := p.detectCycles(); err != nil {
		hooks.OnDone(0, err)
		return err
	}

	passes, err := p.schedule()
	hooks.OnDone(passes, err)
	if err != nil {
		return err
	}

	p.checked = true
	return nil
}

func (p *Project) activityCount() int {
	n := len(p.groups)
	for _, g := range p.groups {
		n += len(g.tasks)
	}
	return n
}

func (p *Project) pruneEmptyGroups() {
	kept := p.groups[:0]
	for _, g := range p.groups {
		if len(g.tasks) == 0 {
			p.stripPredecessor(g)
			continue
		}
		kept = append(kept, g)
	}
	p.groups = kept
}

// expandedPreds returns the activity's predecessors including the implicit
// structural edges: a task inherits its group's predecessors, and a group
// depends on its own members (its span derives from them).
func expandedPreds(a Activity) []Activity {
	switch v := a.(type) {
	case *Task:
		preds := append([]Activity{}, v.preds...)
		return append(preds, v.group.preds...)
	case *TaskGroup:
		preds := append([]Activity{}, v.preds...)
		for _, t := range v.tasks {
			preds = append(preds, t)
		}
		return preds
	}
	return nil
}

// detectCycles runs a coloring DFS over the expanded predecessor relation.
func (p *Project) detectCycles() error {
	states := make(map[int64]visitState, p.activityCount())

	var visit func(a Activity) error
	visit = func(a Activity) error {
		switch states[a.ID()] {
		case visiting:
			return errors.New(errors.ErrCodeCircularDependency,
				"circular dependency involving %q", a.Name())
		case visited:
			return nil
		}
		states[a.ID()] = visiting
		for _, pred := range expandedPreds(a) {
			if err := visit(pred); err != nil {
				return err
			}
		}
		states[a.ID()] = visited
		return nil
	}

	for _, g := range p.groups {
		if err := visit(g); err != nil {
			return err
		}
		for _, t := range g.tasks {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// scheduler propagates start-time floors to a fixed point. Starts are staged
// in a buffer keyed by activity identity; nodes are only committed after the
// whole computation converges.
type scheduler struct {
	project *Project
	starts  map[int64]time.Time
	tasks   []*Task
}

// gapAfter returns the spacing a dependent must leave after the predecessor:
// one unit for ordinary activities, nothing after a zero-duration milestone.
func (s *scheduler) gapAfter(pred Activity) time.Duration {
	if pred.DurationUnits() == 0 {
		return 0
	}
	return s.project.unit.Duration()
}

func (s *scheduler) startOf(a Activity) time.Time {
	switch v := a.(type) {
	case *Task:
		return s.starts[v.id]
	case *TaskGroup:
		min := time.Time{}
		for _, t := range v.tasks {
			st := s.starts[t.id]
			if min.IsZero() || st.Before(min) {
				min = st
			}
		}
		return min
	}
	return time.Time{}
}

func (s *scheduler) endOf(a Activity) time.Time {
	switch v := a.(type) {
	case *Task:
		return s.starts[v.id].Add(time.Duration(v.duration) * s.project.unit.Duration())
	case *TaskGroup:
		max := time.Time{}
		for _, t := range v.tasks {
			end := s.starts[t.id].Add(time.Duration(t.duration) * s.project.unit.Duration())
			if end.After(max) {
				max = end
			}
		}
		return max
	}
	return time.Time{}
}

// floorFrom returns the earliest start the dependent may have given one
// predecessor edge.
func (s *scheduler) floorFrom(pred Activity) time.Time {
	return s.endOf(pred).Add(s.gapAfter(pred))
}

// relaxTask raises the task's staged start to satisfy the given predecessor
// set, recursing into each predecessor's own edges first. Reports whether
// anything moved.
func (s *scheduler) relaxTask(t *Task, preds []Activity, done map[int64]bool) bool {
	if done[t.id] {
		return false
	}
	done[t.id] = true

	changed := false
	want := s.starts[t.id]
	for _, pred := range preds {
		if pt, ok := pred.(*Task); ok {
			if s.relaxTask(pt, pt.preds, done) {
				changed = true
			}
		}
		if floor := s.floorFrom(pred); floor.After(want) {
			want = floor
		}
	}
	if want.After(s.starts[t.id]) {
		s.starts[t.id] = want
		changed = true
	}
	return changed
}

// adjustTasks applies explicit task-to-task edges.
func (s *scheduler) adjustTasks() bool {
	done := make(map[int64]bool, len(s.tasks))
	changed := false
	for _, t := range s.tasks {
		var taskPreds []Activity
		for _, pred := range t.preds {
			if _, ok := pred.(*Task); ok {
				taskPreds = append(taskPreds, pred)
			}
		}
		if s.relaxTask(t, taskPreds, done) {
			changed = true
		}
	}
	return changed
}

// adjustGroups applies group-to-group edges by raising every member of the
// dependent group to the floor derived from the predecessor group.
func (s *scheduler) adjustGroups() bool {
	changed := false
	for _, g := range s.project.groups {
		floor := time.Time{}
		for _, pred := range g.preds {
			if _, ok := pred.(*TaskGroup); !ok {
				continue
			}
			if f := s.floorFrom(pred); f.After(floor) {
				floor = f
			}
		}
		if floor.IsZero() {
			continue
		}
		for _, t := range g.tasks {
			if floor.After(s.starts[t.id]) {
				s.starts[t.id] = floor
				changed = true
			}
		}
	}
	return changed
}

// adjustGeneric applies the remaining mixed edges: tasks depending on
// groups, groups depending on tasks, and the inherited group edges of every
// member task.
func (s *scheduler) adjustGeneric() bool {
	changed := false
	for _, g := range s.project.groups {
		groupFloor := time.Time{}
		for _, pred := range g.preds {
			if f := s.floorFrom(pred); f.After(groupFloor) {
				groupFloor = f
			}
		}
		for _, t := range g.tasks {
			want := s.starts[t.id]
			if groupFloor.After(want) {
				want = groupFloor
			}
			for _, pred := range t.preds {
				if _, ok := pred.(*TaskGroup); !ok {
					continue
				}
				if f := s.floorFrom(pred); f.After(want) {
					want = f
				}
			}
			if want.After(s.starts[t.id]) {
				s.starts[t.id] = want
				changed = true
			}
		}
	}
	return changed
}

// schedule runs the adjustment passes to a fixed point and commits the
// result. Returns the number of outer iterations taken.
func (p *Project) schedule() (int, error) {
	s := &scheduler{project: p, starts: map[int64]time.Time{}}
	for _, g := range p.groups {
		s.tasks = append(s.tasks, g.tasks...)
	}

	// Seed every task at the largest static floor it carries.
	for _, g := range p.groups {
		for _, t := range g.tasks {
			start := p.start
			if t.earliest.After(start) {
				start = t.earliest
			}
			if g.earliest.After(start) {
				start = g.earliest
			}
			s.starts[t.id] = start
		}
	}

	// The graph is acyclic, so every pass only raises starts and the loop
	// must settle within one outer iteration per activity. Exceeding the
	// bound means the propagation itself is broken.
	bound := p.activityCount() + 1
	passes := 0

	s.adjustTasks()
	s.adjustGroups()
	s.adjustGeneric()
	for s.adjustTasks() {
		passes++
		if passes > bound {
			return passes, errors.New(errors.ErrCodeInternal,
				"schedule did not converge after %d passes", passes)
		}
		if !s.adjustGroups() && !s.adjustGeneric() {
			break
		}
	}

	// Commit: task starts from the buffer, group spans derived from members.
	unitDur := p.unit.Duration()
	for _, g := range p.groups {
		for _, t := range g.tasks {
			t.start = s.starts[t.id]
		}
		g.start = s.startOf(g)
		g.duration = int(s.endOf(g).Sub(g.start) / unitDur)
	}
	return passes, nil
}

// byDisplayOrder sorts activities for display: later starts first, manual
// order breaking ties.
func byDisplayOrder[A Activity](items []A) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := items[i].Start(), items[j].Start()
		if !si.Equal(sj) {
			return si.After(sj)
		}
		return items[i].meta().order < items[j].meta().order
	})
}

// Groups returns the task groups in display order, or nil when the project
// has not been validated since its last mutation.
func (p *Project) Groups() []*TaskGroup {
	if !p.checked {
		return nil
	}
	groups := append([]*TaskGroup{}, p.groups...)
	byDisplayOrder(groups)
	return groups
}

// Tasks returns the group's tasks in display order, or nil when the project
// is unvalidated or the group does not belong to it.
func (p *Project) Tasks(g *TaskGroup) []*Task {
	if !p.checked || g == nil || g.project != p {
		return nil
	}
	tasks := append([]*Task{}, g.tasks...)
	byDisplayOrder(tasks)
	return tasks
}

// Dependencies returns every explicit predecessor edge, or nil when the
// project has not been validated since its last mutation.
func (p *Project) Dependencies() []Dependency {
	if !p.checked {
		return nil
	}
	var deps []Dependency
	for _, g := range p.Groups() {
		for _, pred := range g.preds {
			deps = append(deps, Dependency{Dependent: g, Predecessor: pred})
		}
		for _, t := range p.Tasks(g) {
			for _, pred := range t.preds {
				deps = append(deps, Dependency{Dependent: t, Predecessor: pred})
			}
		}
	}
	return deps
}
