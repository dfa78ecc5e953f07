package rtverify

import (
	"fmt"
)

// Option represents a functional option for assembling an App
type Option func(*AppBuilder) error

// AppBuilder collects declarations and assembles them into an immutable App.
// Declaration order is preserved; it decides which violation the validator
// reports first.
type AppBuilder struct {
	resources []Resource
	tasks     []Task
	extern    []Ident
}

// NewAppBuilder creates an empty builder.
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{
		resources: make([]Resource, 0),
		tasks:     make([]Task, 0),
		extern:    make([]Ident, 0),
	}
}

// NewApp assembles an App from the provided options.
func NewApp(opts ...Option) (*App, error) {
	b := NewAppBuilder()
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// AddResource declares a resource.
func (b *AppBuilder) AddResource(r Resource) *AppBuilder {
	b.resources = append(b.resources, r)
	return b
}

// AddTask declares a task of any kind.
func (b *AppBuilder) AddTask(t Task) *AppBuilder {
	b.tasks = append(b.tasks, cloneTask(&t))
	return b
}

// AddExternInterrupt reserves an interrupt for software task dispatch.
func (b *AppBuilder) AddExternInterrupt(id Ident) *AppBuilder {
	b.extern = append(b.extern, id)
	return b
}

// Build checks the assembly invariants and returns the App.
func (b *AppBuilder) Build() (*App, error) {
	app := &App{
		resources:        make(map[string]*Resource, len(b.resources)),
		resourceOrder:    make([]string, 0, len(b.resources)),
		tasks:            make(map[string]*Task, len(b.tasks)),
		externInterrupts: make(map[string]Ident, len(b.extern)),
		externOrder:      make([]string, 0, len(b.extern)),
	}

	for i := range b.resources {
		r := b.resources[i]
		if r.Name == "" {
			return nil, assemblyErr(ErrEmptyName, r.Ident)
		}
		if _, exists := app.resources[r.Name]; exists {
			return nil, assemblyErr(ErrDuplicateResource, r.Ident)
		}
		if r.Late && r.Init != nil {
			return nil, assemblyErr(ErrResourceInitAndLate, r.Ident)
		}
		if !r.Late && r.Init == nil {
			return nil, assemblyErr(ErrResourceUninitialized, r.Ident)
		}
		app.resources[r.Name] = &r
		app.resourceOrder = append(app.resourceOrder, r.Name)
	}

	for _, id := range b.extern {
		if id.Name == "" {
			return nil, assemblyErr(ErrEmptyName, id)
		}
		if _, exists := app.externInterrupts[id.Name]; exists {
			return nil, assemblyErr(ErrDuplicateExternInterrupt, id)
		}
		app.externInterrupts[id.Name] = id
		app.externOrder = append(app.externOrder, id.Name)
	}

	bound := make(map[string]string)
	for i := range b.tasks {
		t := cloneTask(&b.tasks[i])
		if t.Name == "" {
			return nil, assemblyErr(ErrEmptyName, t.Ident)
		}
		if _, exists := app.tasks[t.Name]; exists {
			return nil, assemblyErr(ErrDuplicateTask, t.Ident)
		}
		if err := checkRefs(&t); err != nil {
			return nil, err
		}

		switch t.Kind {
		case KindInit:
			if app.init != nil {
				return nil, assemblyErr(ErrMultipleInit, t.Ident)
			}
			t.Priority = NoPriority
			t.Capacity = 0
			t.Binds = nil
			for _, late := range t.LateResources {
				if late.Name == "" {
					return nil, assemblyErr(ErrEmptyName, late)
				}
			}
			app.init = &t
		case KindIdle:
			if app.idle != nil {
				return nil, assemblyErr(ErrMultipleIdle, t.Ident)
			}
			t.Priority = PriorityOf(0)
			t.Capacity = 0
			t.Binds = nil
			t.LateResources = nil
			app.idle = &t
		case KindHardware:
			if lvl, ok := t.Priority.Level(); !ok || lvl < 1 {
				return nil, assemblyErr(ErrInvalidPriority, t.Ident)
			}
			if len(t.Binds) == 0 {
				return nil, assemblyErr(ErrMissingBinding, t.Ident)
			}
			for _, bind := range t.Binds {
				if bind.Name == "" {
					return nil, assemblyErr(ErrEmptyName, bind)
				}
				if owner, exists := bound[bind.Name]; exists {
					return nil, fmt.Errorf("%w (by %q)", assemblyErr(ErrInterruptAlreadyBound, bind), owner)
				}
				bound[bind.Name] = t.Name
			}
			t.Capacity = 0
			t.LateResources = nil
			app.hardware = append(app.hardware, &t)
		case KindSoftware:
			if lvl, ok := t.Priority.Level(); !ok || lvl < 1 {
				return nil, assemblyErr(ErrInvalidPriority, t.Ident)
			}
			if t.Capacity == 0 {
				t.Capacity = 1
			}
			if t.Capacity < 0 {
				return nil, assemblyErr(ErrInvalidCapacity, t.Ident)
			}
			t.Binds = nil
			t.LateResources = nil
			app.software = append(app.software, &t)
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownTaskKind, t.Kind)
		}

		app.tasks[t.Name] = &t
	}

	return app, nil
}

func checkRefs(t *Task) error {
	seen := make(map[string]struct{}, len(t.Resources))
	for _, ref := range t.Resources {
		if ref.Name == "" {
			return assemblyErr(ErrEmptyName, ref.Ident)
		}
		if _, dup := seen[ref.Name]; dup {
			return fmt.Errorf("%w (task %q)", assemblyErr(ErrDuplicateAccess, ref.Ident), t.Name)
		}
		seen[ref.Name] = struct{}{}
	}
	return nil
}

func assemblyErr(kind error, id Ident) error {
	if pos := id.Span.String(); pos != "" {
		return fmt.Errorf("%s: %w: %q", pos, kind, id.Name)
	}
	return fmt.Errorf("%w: %q", kind, id.Name)
}

// WithResource declares a resource with a static initial value.
func WithResource(name string, init any) Option {
	return func(b *AppBuilder) error {
		b.AddResource(Resource{Ident: Name(name), Init: init})
		return nil
	}
}

// WithLateResource declares a resource whose value init produces.
func WithLateResource(name string) Option {
	return func(b *AppBuilder) error {
		b.AddResource(Resource{Ident: Name(name), Late: true})
		return nil
	}
}

// WithResourceDecl declares a fully specified resource, including its span.
func WithResourceDecl(r Resource) Option {
	return func(b *AppBuilder) error {
		b.AddResource(r)
		return nil
	}
}

// WithTask declares a fully specified task.
func WithTask(t Task) Option {
	return func(b *AppBuilder) error {
		b.AddTask(t)
		return nil
	}
}

// WithInit declares the init task. late lists the late resources it produces.
func WithInit(name string, late []string, refs ...ResourceRef) Option {
	return func(b *AppBuilder) error {
		t := Task{Ident: Name(name), Kind: KindInit, Resources: refs}
		for _, l := range late {
			t.LateResources = append(t.LateResources, Name(l))
		}
		b.AddTask(t)
		return nil
	}
}

// WithIdle declares the idle task.
func WithIdle(name string, refs ...ResourceRef) Option {
	return func(b *AppBuilder) error {
		b.AddTask(Task{Ident: Name(name), Kind: KindIdle, Resources: refs})
		return nil
	}
}

// WithHardwareTask declares a task bound to one or more interrupts.
func WithHardwareTask(name string, priority uint8, binds []string, refs ...ResourceRef) Option {
	return func(b *AppBuilder) error {
		t := Task{Ident: Name(name), Kind: KindHardware, Priority: PriorityOf(priority), Resources: refs}
		for _, bind := range binds {
			t.Binds = append(t.Binds, Name(bind))
		}
		b.AddTask(t)
		return nil
	}
}

// WithSoftwareTask declares a task dispatched through a queue of the given
// capacity. A capacity of 0 means 1.
func WithSoftwareTask(name string, priority uint8, capacity int, refs ...ResourceRef) Option {
	return func(b *AppBuilder) error {
		b.AddTask(Task{
			Ident:     Name(name),
			Kind:      KindSoftware,
			Priority:  PriorityOf(priority),
			Capacity:  capacity,
			Resources: refs,
		})
		return nil
	}
}

// WithExternInterrupts reserves interrupts for software task dispatch.
func WithExternInterrupts(names ...string) Option {
	return func(b *AppBuilder) error {
		for _, n := range names {
			b.AddExternInterrupt(Name(n))
		}
		return nil
	}
}
