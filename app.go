package rtverify

// App is the assembled specification: resources, tasks and the extern
// interrupt pool. It is built once by NewApp and never mutated afterwards,
// so it is safe for concurrent reads.
//
// Task names are unique across all task kinds and resource names are unique;
// NewApp guarantees both and the validator relies on it.
type App struct {
	resources     map[string]*Resource
	resourceOrder []string

	tasks    map[string]*Task
	init     *Task
	idle     *Task
	hardware []*Task
	software []*Task

	externInterrupts map[string]Ident
	externOrder      []string
}

// Resource looks up a declared resource.
func (a *App) Resource(name string) (Resource, bool) {
	r, ok := a.resources[name]
	if !ok {
		return Resource{}, false
	}
	return *r, true
}

// Resources returns all resources in declaration order.
func (a *App) Resources() []Resource {
	out := make([]Resource, 0, len(a.resourceOrder))
	for _, name := range a.resourceOrder {
		out = append(out, *a.resources[name])
	}
	return out
}

// LateResources returns the late resources in declaration order.
func (a *App) LateResources() []Resource {
	var out []Resource
	for _, name := range a.resourceOrder {
		if r := a.resources[name]; r.Late {
			out = append(out, *r)
		}
	}
	return out
}

// Task looks up a task of any kind by name.
func (a *App) Task(name string) (Task, bool) {
	t, ok := a.tasks[name]
	if !ok {
		return Task{}, false
	}
	return cloneTask(t), true
}

// Init returns the init task, if one is defined.
func (a *App) Init() (Task, bool) {
	if a.init == nil {
		return Task{}, false
	}
	return cloneTask(a.init), true
}

// Idle returns the idle task, if one is defined.
func (a *App) Idle() (Task, bool) {
	if a.idle == nil {
		return Task{}, false
	}
	return cloneTask(a.idle), true
}

// HardwareTasks returns the hardware tasks in declaration order.
func (a *App) HardwareTasks() []Task { return cloneTasks(a.hardware) }

// SoftwareTasks returns the software tasks in declaration order.
func (a *App) SoftwareTasks() []Task { return cloneTasks(a.software) }

// Tasks returns every task: init, idle, hardware tasks, then software tasks.
func (a *App) Tasks() []Task { return cloneTasks(a.orderedTasks()) }

// ExternInterrupts returns the dispatcher pool in declaration order.
func (a *App) ExternInterrupts() []Ident {
	out := make([]Ident, 0, len(a.externOrder))
	for _, name := range a.externOrder {
		out = append(out, a.externInterrupts[name])
	}
	return out
}

// IsDispatcher reports whether name is reserved for software task dispatch.
func (a *App) IsDispatcher(name string) bool {
	_, ok := a.externInterrupts[name]
	return ok
}

// ResourceAccesses returns every declared access in the order the checks
// scan them: init, idle, hardware tasks, software tasks, each in declaration
// order.
func (a *App) ResourceAccesses() []AccessSite {
	var out []AccessSite
	for _, t := range a.orderedTasks() {
		for _, ref := range t.Resources {
			out = append(out, AccessSite{
				Task:     t.Name,
				Priority: t.Priority,
				Resource: ref.Ident,
				Access:   ref.Access,
			})
		}
	}
	return out
}

func (a *App) orderedTasks() []*Task {
	out := make([]*Task, 0, len(a.tasks))
	if a.init != nil {
		out = append(out, a.init)
	}
	if a.idle != nil {
		out = append(out, a.idle)
	}
	out = append(out, a.hardware...)
	out = append(out, a.software...)
	return out
}

func cloneTask(t *Task) Task {
	c := *t
	c.Binds = append([]Ident(nil), t.Binds...)
	c.Resources = append([]ResourceRef(nil), t.Resources...)
	c.LateResources = append([]Ident(nil), t.LateResources...)
	return c
}

func cloneTasks(ts []*Task) []Task {
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, cloneTask(t))
	}
	return out
}
