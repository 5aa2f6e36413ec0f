// Package adapter builds the dynamic management adapter for one component
// instance. The adapter exposes exactly the surface its descriptor declares
// and forwards attribute reads/writes and operation invocations to the
// wrapped instance.
//
// All reflective binding happens once, at build time: every declared
// attribute and operation is resolved to a bound accessor function and stored
// in a capability table, so the invocation path is a map lookup plus a
// pre-bound call.
package adapter

import (
	"fmt"
	"reflect"

	"github.com/vk/regentgo/internal/descriptor"
)

// Adapter wraps one instance behind its descriptor's declared surface.
type Adapter struct {
	desc     *descriptor.Component
	instance any

	getters    map[string]func() (any, error)
	setters    map[string]func(any) error
	operations map[string]func(args []any) (any, error)
}

// Build constructs an adapter for instance according to desc. A declared
// attribute or operation that cannot be bound to the instance is a build
// error: the descriptor and the backing type are out of sync.
func Build(desc *descriptor.Component, instance any) (*Adapter, error) {
	if desc == nil {
		return nil, fmt.Errorf("adapter: nil descriptor")
	}
	if instance == nil {
		return nil, fmt.Errorf("adapter: nil instance for %q", desc.Name)
	}

	a := &Adapter{
		desc:       desc,
		instance:   instance,
		getters:    make(map[string]func() (any, error)),
		setters:    make(map[string]func(any) error),
		operations: make(map[string]func(args []any) (any, error)),
	}

	v := reflect.ValueOf(instance)

	for _, attr := range desc.Attributes {
		if attr.Readable {
			getter, err := bindGetter(v, attr)
			if err != nil {
				return nil, fmt.Errorf("adapter %q: %w", desc.Name, err)
			}
			a.getters[attr.Name] = getter
		}
		if attr.Writeable {
			setter, err := bindSetter(v, attr)
			if err != nil {
				return nil, fmt.Errorf("adapter %q: %w", desc.Name, err)
			}
			a.setters[attr.Name] = setter
		}
	}

	for _, op := range desc.Operations {
		bound, err := bindOperation(v, op)
		if err != nil {
			return nil, fmt.Errorf("adapter %q: %w", desc.Name, err)
		}
		a.operations[op.Name] = bound
	}

	return a, nil
}

// Descriptor returns the descriptor this adapter was built from.
func (a *Adapter) Descriptor() *descriptor.Component {
	return a.desc
}

// Instance returns the wrapped instance.
func (a *Adapter) Instance() any {
	return a.instance
}

// GetAttribute reads a declared readable attribute.
func (a *Adapter) GetAttribute(name string) (any, error) {
	getter, ok := a.getters[name]
	if !ok {
		return nil, fmt.Errorf("attribute %q is not readable on %q", name, a.desc.Name)
	}
	return getter()
}

// SetAttribute writes a declared writeable attribute.
func (a *Adapter) SetAttribute(name string, value any) error {
	setter, ok := a.setters[name]
	if !ok {
		return fmt.Errorf("attribute %q is not writeable on %q", name, a.desc.Name)
	}
	return setter(value)
}

// Invoke calls a declared operation with the given arguments.
func (a *Adapter) Invoke(name string, args []any) (any, error) {
	op, ok := a.operations[name]
	if !ok {
		return nil, fmt.Errorf("operation %q is not declared on %q", name, a.desc.Name)
	}
	return op(args)
}
