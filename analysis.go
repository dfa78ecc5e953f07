package rtverify

import (
	"sort"
)

// Analysis is the scheduling data a code generator derives from a valid App.
// It is informational: Validate does not depend on it.
type Analysis struct {
	// Owners holds every resource with at least one exclusive access, from
	// any task including init.
	Owners map[string]struct{}
	// Ceilings maps each resource to the highest priority among the tasks
	// with a concrete priority that access it. Resources only init touches
	// are absent.
	Ceilings map[string]uint8
	// Contended lists resources whose accessors run at more than one
	// priority level and so need a critical section, sorted by name.
	Contended []string
	// SoftwarePriorities lists the distinct software task priorities in
	// ascending order. Each level needs its own dispatcher interrupt.
	SoftwarePriorities []uint8
}

// Analyze computes ceilings and dispatcher needs for app.
func Analyze(app *App) *Analysis {
	a := &Analysis{
		Owners:   make(map[string]struct{}),
		Ceilings: make(map[string]uint8),
	}

	levels := make(map[string]map[uint8]struct{})
	for _, site := range app.ResourceAccesses() {
		name := site.Resource.Name
		if site.Access.IsExclusive() {
			a.Owners[name] = struct{}{}
		}
		lvl, ok := site.Priority.Level()
		if !ok {
			continue
		}
		if cur, seen := a.Ceilings[name]; !seen || lvl > cur {
			a.Ceilings[name] = lvl
		}
		if levels[name] == nil {
			levels[name] = make(map[uint8]struct{})
		}
		levels[name][lvl] = struct{}{}
	}

	for name, set := range levels {
		if len(set) > 1 {
			a.Contended = append(a.Contended, name)
		}
	}
	sort.Strings(a.Contended)

	seen := make(map[uint8]struct{})
	for _, t := range app.software {
		lvl, _ := t.Priority.Level()
		if _, dup := seen[lvl]; dup {
			continue
		}
		seen[lvl] = struct{}{}
		a.SoftwarePriorities = append(a.SoftwarePriorities, lvl)
	}
	sort.Slice(a.SoftwarePriorities, func(i, j int) bool {
		return a.SoftwarePriorities[i] < a.SoftwarePriorities[j]
	})

	return a
}

// Ceiling returns the ceiling of resource name, if it has one.
func (a *Analysis) Ceiling(name string) (Priority, bool) {
	lvl, ok := a.Ceilings[name]
	if !ok {
		return NoPriority, false
	}
	return PriorityOf(lvl), true
}

// IsOwned reports whether name has an exclusive access somewhere.
func (a *Analysis) IsOwned(name string) bool {
	_, ok := a.Owners[name]
	return ok
}
