package rtverify

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority is the optional priority of a task. Init has no priority, which is
// distinct from every numeric level including 0.
type Priority struct {
	level uint8
	set   bool
}

// NoPriority is the priority of the init task.
var NoPriority = Priority{}

// PriorityOf returns the concrete priority n.
func PriorityOf(n uint8) Priority { return Priority{level: n, set: true} }

// Level returns the numeric priority and whether one is set.
func (p Priority) Level() (uint8, bool) { return p.level, p.set }

// IsSet reports whether p is a concrete priority.
func (p Priority) IsSet() bool { return p.set }

func (p Priority) String() string {
	if !p.set {
		return "none"
	}
	return strconv.Itoa(int(p.level))
}

// Access is how a task touches a resource.
type Access int

const (
	// Exclusive is read-write access, protected by the resource ceiling when contended.
	Exclusive Access = iota
	// Shared is read-only, lock-free access.
	Shared
)

// IsExclusive reports whether a is read-write access.
func (a Access) IsExclusive() bool { return a == Exclusive }

// IsShared reports whether a is read-only access.
func (a Access) IsShared() bool { return a == Shared }

func (a Access) String() string {
	switch a {
	case Exclusive:
		return "exclusive"
	case Shared:
		return "shared"
	default:
		return "Access(" + strconv.Itoa(int(a)) + ")"
	}
}

// ParseAccess accepts "exclusive" or "shared" in any case.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclusive", "mut", "&mut":
		return Exclusive, nil
	case "shared", "&":
		return Shared, nil
	default:
		return 0, fmt.Errorf("unknown access mode %q", s)
	}
}

// ResourceRef is one entry of a task's resource list.
type ResourceRef struct {
	Ident
	Access Access
}

// Ref builds an exclusive ResourceRef.
func Ref(name string) ResourceRef { return ResourceRef{Ident: Name(name), Access: Exclusive} }

// SharedRef builds a shared ResourceRef.
func SharedRef(name string) ResourceRef { return ResourceRef{Ident: Name(name), Access: Shared} }

// Resource is a piece of shared state. Exactly one of Init and Late is set.
type Resource struct {
	Ident
	// Init is the static initial value. It is opaque to the verifier; only
	// its presence matters.
	Init any
	Late bool
}

// TaskKind distinguishes the four task variants.
type TaskKind int

const (
	KindInit TaskKind = iota
	KindIdle
	KindHardware
	KindSoftware
)

func (k TaskKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindIdle:
		return "idle"
	case KindHardware:
		return "hardware"
	case KindSoftware:
		return "software"
	default:
		return "TaskKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Task is a unit of schedulable code.
//
// Priority is ignored for init and idle: assembly sets NoPriority and
// PriorityOf(0) respectively. Capacity only applies to software tasks, Binds
// only to hardware tasks, and LateResources only to init.
type Task struct {
	Ident
	Kind      TaskKind
	Priority  Priority
	Capacity  int
	Binds     []Ident
	Resources []ResourceRef
	// LateResources lists the late resources init produces. Field-level
	// completeness is checked by the code generator, not here.
	LateResources []Ident
}

// AccessSite is one (task, resource, mode) triple of the model.
type AccessSite struct {
	Task     string
	Priority Priority
	Resource Ident
	Access   Access
}
