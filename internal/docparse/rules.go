package docparse

import (
	"fmt"

	"github.com/vk/regentgo/internal/descriptor"
)

// rule describes how one block path in a descriptor document maps onto the
// descriptor model: which type to instantiate and which accumulation method
// attaches the finished child to its parent.
type rule struct {
	path   string
	target string
	method string
	create func() any
	attach func(parent, child any) error
}

// scalarRule collects a scalar list attribute instead of a nested block. The
// single instance is the notification-type rule: the "types" attribute of a
// notification block appends each element via AddNotifType.
type scalarRule struct {
	path   string
	attr   string
	method string
	append func(parent any, value string) error
}

// buildRules constructs the descriptor document grammar. The paths, target
// types and accumulation methods here define document compatibility and must
// not drift.
func buildRules() (map[string]*rule, map[string]*scalarRule) {
	blocks := map[string]*rule{
		"component": {
			path:   "component",
			target: "descriptor.Component",
			method: "Add",
			create: func() any { return descriptor.NewComponent() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.List](parent, child, func(p *descriptor.List, c *descriptor.Component) {
					p.Add(c)
				})
			},
		},
		"component/attribute": {
			path:   "component/attribute",
			target: "descriptor.Attribute",
			method: "AddAttribute",
			create: func() any { return descriptor.NewAttribute() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.Component](parent, child, func(p *descriptor.Component, c *descriptor.Attribute) {
					p.AddAttribute(c)
				})
			},
		},
		"component/operation": {
			path:   "component/operation",
			target: "descriptor.Operation",
			method: "AddOperation",
			create: func() any { return descriptor.NewOperation() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.Component](parent, child, func(p *descriptor.Component, c *descriptor.Operation) {
					p.AddOperation(c)
				})
			},
		},
		"component/operation/parameter": {
			path:   "component/operation/parameter",
			target: "descriptor.Parameter",
			method: "AddParameter",
			create: func() any { return descriptor.NewParameter() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.Operation](parent, child, func(p *descriptor.Operation, c *descriptor.Parameter) {
					p.AddParameter(c)
				})
			},
		},
		"component/operation/field": {
			path:   "component/operation/field",
			target: "descriptor.Field",
			method: "AddField",
			create: func() any { return descriptor.NewField() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.Operation](parent, child, func(p *descriptor.Operation, c *descriptor.Field) {
					p.AddField(c)
				})
			},
		},
		"component/notification": {
			path:   "component/notification",
			target: "descriptor.Notification",
			method: "AddNotification",
			create: func() any { return descriptor.NewNotification() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.Component](parent, child, func(p *descriptor.Component, c *descriptor.Notification) {
					p.AddNotification(c)
				})
			},
		},
		"component/notification/field": {
			path:   "component/notification/field",
			target: "descriptor.Field",
			method: "AddField",
			create: func() any { return descriptor.NewField() },
			attach: func(parent, child any) error {
				return attachTo[*descriptor.Notification](parent, child, func(p *descriptor.Notification, c *descriptor.Field) {
					p.AddField(c)
				})
			},
		},
	}

	scalars := map[string]*scalarRule{
		"component/notification": {
			path:   "component/notification/notification-type",
			attr:   "types",
			method: "AddNotifType",
			append: func(parent any, value string) error {
				n, ok := parent.(*descriptor.Notification)
				if !ok {
					return fmt.Errorf("notification-type rule: unexpected parent %T", parent)
				}
				n.AddNotifType(value)
				return nil
			},
		},
	}

	return blocks, scalars
}

// attachTo wires a typed child into a typed parent, reporting a descriptive
// error when the stack discipline has been violated.
func attachTo[P, C any](parent, child any, add func(P, C)) error {
	p, ok := parent.(P)
	if !ok {
		return fmt.Errorf("rule attach: unexpected parent %T", parent)
	}
	c, ok := child.(C)
	if !ok {
		return fmt.Errorf("rule attach: unexpected child %T", child)
	}
	add(p, c)
	return nil
}
