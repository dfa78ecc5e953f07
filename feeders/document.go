// Package feeders reads specification documents and configuration from
// YAML, TOML, JSON files and environment variables.
package feeders

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/rtverify"
)

// defaultPriority is the priority of a task that does not declare one.
const defaultPriority = 1

// Document is the on-disk shape of a specification.
//
//	resources:
//	  - {name: a, late: true}
//	  - {name: c, init: 0}
//	init: {name: init, resources: [c], late_resources: [a]}
//	idle: {name: idle, resources: ["&a"]}
//	tasks:
//	  - {name: foo, binds: [UART0], priority: 2, resources: [c]}
//	  - {name: bar, capacity: 2, priority: 2, resources: [c]}
//	extern_interrupts: [EXTI0]
//
// A resource reference written `&x` is a shared access, `x` is exclusive.
// A task with binds is a hardware task, otherwise a software task.
type Document struct {
	Resources        []ResourceDoc `yaml:"resources" json:"resources" toml:"resources"`
	Init             *InitDoc      `yaml:"init,omitempty" json:"init,omitempty" toml:"init,omitempty"`
	Idle             *IdleDoc      `yaml:"idle,omitempty" json:"idle,omitempty" toml:"idle,omitempty"`
	Tasks            []TaskDoc     `yaml:"tasks" json:"tasks" toml:"tasks"`
	ExternInterrupts []Name        `yaml:"extern_interrupts" json:"extern_interrupts" toml:"extern_interrupts"`
}

// ResourceDoc declares a resource. Exactly one of init and late is set.
type ResourceDoc struct {
	Name Name `yaml:"name" json:"name" toml:"name"`
	Init any  `yaml:"init,omitempty" json:"init,omitempty" toml:"init,omitempty"`
	Late bool `yaml:"late,omitempty" json:"late,omitempty" toml:"late,omitempty"`
}

// InitDoc declares the init task and the late resources it produces.
type InitDoc struct {
	Name          Name   `yaml:"name" json:"name" toml:"name"`
	Resources     []Name `yaml:"resources" json:"resources" toml:"resources"`
	LateResources []Name `yaml:"late_resources" json:"late_resources" toml:"late_resources"`
}

// IdleDoc declares the idle task.
type IdleDoc struct {
	Name      Name   `yaml:"name" json:"name" toml:"name"`
	Resources []Name `yaml:"resources" json:"resources" toml:"resources"`
}

// TaskDoc declares a hardware task when binds is set, otherwise a software task.
type TaskDoc struct {
	Name      Name   `yaml:"name" json:"name" toml:"name"`
	Binds     []Name `yaml:"binds,omitempty" json:"binds,omitempty" toml:"binds,omitempty"`
	Priority  *uint8 `yaml:"priority,omitempty" json:"priority,omitempty" toml:"priority,omitempty"`
	Capacity  int    `yaml:"capacity,omitempty" json:"capacity,omitempty" toml:"capacity,omitempty"`
	Resources []Name `yaml:"resources" json:"resources" toml:"resources"`
}

// Name is a string that remembers where it was written. Only YAML documents
// carry line and column.
type Name struct {
	Value  string
	Line   int
	Column int
}

// UnmarshalYAML keeps the node position.
func (n *Name) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrNameNotScalar, node.Line)
	}
	n.Value = node.Value
	n.Line = node.Line
	n.Column = node.Column
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		// Point past the opening quote.
		n.Column++
	}
	return nil
}

// UnmarshalText is used by the JSON and TOML decoders.
func (n *Name) UnmarshalText(text []byte) error {
	n.Value = string(text)
	return nil
}

// MarshalText writes the bare value.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.Value), nil
}

func (n Name) ident(file string) rtverify.Ident {
	return rtverify.Ident{
		Name: n.Value,
		Span: rtverify.Span{File: file, Line: n.Line, Column: n.Column},
	}
}

// ref turns `x` into an exclusive and `&x` into a shared access.
func (n Name) ref(file string) rtverify.ResourceRef {
	id := n.ident(file)
	if name, ok := strings.CutPrefix(id.Name, "&"); ok {
		id.Name = strings.TrimSpace(name)
		if id.Span.Column > 0 {
			id.Span.Column++
		}
		return rtverify.ResourceRef{Ident: id, Access: rtverify.Shared}
	}
	return rtverify.ResourceRef{Ident: id, Access: rtverify.Exclusive}
}

// Build assembles the App the document describes. file is recorded in every
// span.
func (d *Document) Build(file string) (*rtverify.App, error) {
	b := rtverify.NewAppBuilder()

	for _, r := range d.Resources {
		b.AddResource(rtverify.Resource{Ident: r.Name.ident(file), Init: r.Init, Late: r.Late})
	}

	if d.Init != nil {
		t := rtverify.Task{Ident: d.Init.Name.ident(file), Kind: rtverify.KindInit, Resources: refs(d.Init.Resources, file)}
		for _, l := range d.Init.LateResources {
			t.LateResources = append(t.LateResources, l.ident(file))
		}
		b.AddTask(t)
	}

	if d.Idle != nil {
		b.AddTask(rtverify.Task{Ident: d.Idle.Name.ident(file), Kind: rtverify.KindIdle, Resources: refs(d.Idle.Resources, file)})
	}

	for _, td := range d.Tasks {
		prio := uint8(defaultPriority)
		if td.Priority != nil {
			prio = *td.Priority
		}
		t := rtverify.Task{
			Ident:     td.Name.ident(file),
			Kind:      rtverify.KindSoftware,
			Priority:  rtverify.PriorityOf(prio),
			Capacity:  td.Capacity,
			Resources: refs(td.Resources, file),
		}
		if len(td.Binds) > 0 {
			t.Kind = rtverify.KindHardware
			for _, bind := range td.Binds {
				t.Binds = append(t.Binds, bind.ident(file))
			}
		}
		b.AddTask(t)
	}

	for _, irq := range d.ExternInterrupts {
		b.AddExternInterrupt(irq.ident(file))
	}

	app, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentInvalid, err)
	}
	return app, nil
}

func refs(names []Name, file string) []rtverify.ResourceRef {
	out := make([]rtverify.ResourceRef, 0, len(names))
	for _, n := range names {
		out = append(out, n.ref(file))
	}
	return out
}
