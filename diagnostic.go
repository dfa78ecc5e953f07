package rtverify

import (
	"fmt"
	"strconv"
)

// Span is the position a front-end attached to a name. The verifier never
// interprets it beyond formatting.
type Span struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// IsZero reports whether no position information is attached.
func (s Span) IsZero() bool { return s == Span{} }

func (s Span) String() string {
	if s.File == "" && s.Line == 0 {
		return ""
	}
	out := s.File
	if s.Line > 0 {
		out += ":" + strconv.Itoa(s.Line)
		if s.Column > 0 {
			out += ":" + strconv.Itoa(s.Column)
		}
	}
	return out
}

// Ident is a name together with where it was written.
type Ident struct {
	Name string `json:"name"`
	Span Span   `json:"span,omitzero"`
}

// Name builds an Ident without position information.
func Name(name string) Ident { return Ident{Name: name} }

func (i Ident) String() string { return i.Name }

// Diagnostic is the single structured failure produced by a validation run.
type Diagnostic struct {
	// Kind is one of the Err* verification sentinels.
	Kind error `json:"-"`
	// Ident is the offending identifier (resource or interrupt name).
	Ident string `json:"ident,omitempty"`
	// Task names the task whose declaration triggered the diagnostic, when known.
	Task string `json:"task,omitempty"`
	Span Span   `json:"span,omitzero"`
	Hint string `json:"hint,omitempty"`
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return ""
	}
	msg := "unknown diagnostic"
	if d.Kind != nil {
		msg = d.Kind.Error()
	}
	if d.Ident != "" {
		msg = fmt.Sprintf("%s: %q", msg, d.Ident)
	}
	if d.Task != "" {
		msg = fmt.Sprintf("%s (task %q)", msg, d.Task)
	}
	if d.Hint != "" {
		msg += "; " + d.Hint
	}
	if pos := d.Span.String(); pos != "" {
		return pos + ": " + msg
	}
	return msg
}

func (d *Diagnostic) Unwrap() error { return d.Kind }

// KindName returns a stable short name for the diagnostic kind, suitable for
// event payloads and logs.
func (d *Diagnostic) KindName() string {
	switch d.Kind {
	case ErrUndeclaredResource:
		return "UndeclaredResource"
	case ErrConflictingAccessMode:
		return "ConflictingAccessMode"
	case ErrLateResourceInInit:
		return "LateResourceInInit"
	case ErrSharedAccessInInit:
		return "SharedAccessInInit"
	case ErrMissingInitForLateResources:
		return "MissingInitForLateResources"
	case ErrDispatcherInterruptReused:
		return "DispatcherInterruptReused"
	default:
		return "Unknown"
	}
}

func diagnose(kind error, id Ident, task string) *Diagnostic {
	return &Diagnostic{Kind: kind, Ident: id.Name, Task: task, Span: id.Span}
}
