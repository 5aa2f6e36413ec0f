// Package descriptor defines the metadata model for manageable components.
//
// A Component describes the management surface of one backing Go type: the
// attributes it exposes, the operations that may be invoked on it, and the
// notifications it emits. Components are built either by parsing a descriptor
// document or by introspecting the backing type, and after construction they
// are treated as immutable — the Add* accumulation methods exist for the
// builders and must not be called once a component has been handed to a
// registry.
package descriptor

// Component is the descriptor for one manageable component. Name is the
// logical lookup key; Type is the fully qualified name of the backing Go type
// ("pkg/path.TypeName") and acts as a second lookup key when non-empty.
type Component struct {
	Name        string
	Type        string
	Group       string
	Description string

	Attributes    []*Attribute
	Operations    []*Operation
	Notifications []*Notification
}

// NewComponent returns an empty component descriptor.
func NewComponent() *Component {
	return &Component{}
}

// AddAttribute appends an attribute in document order.
func (c *Component) AddAttribute(a *Attribute) {
	c.Attributes = append(c.Attributes, a)
}

// AddOperation appends an operation in document order.
func (c *Component) AddOperation(o *Operation) {
	c.Operations = append(c.Operations, o)
}

// AddNotification appends a notification in document order.
func (c *Component) AddNotification(n *Notification) {
	c.Notifications = append(c.Notifications, n)
}

// Attribute returns the attribute with the given name, or nil.
func (c *Component) Attribute(name string) *Attribute {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Operation returns the operation with the given name, or nil.
func (c *Component) Operation(name string) *Operation {
	for _, o := range c.Operations {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// List is the accumulation target the document parsers push fully built
// components onto. It keeps document order.
type List struct {
	items []*Component
}

// Add appends a component. This is the top-level accumulation method named by
// the parser rule table.
func (l *List) Add(c *Component) {
	l.items = append(l.items, c)
}

// Components returns the accumulated components in document order.
func (l *List) Components() []*Component {
	return l.items
}

// Len returns the number of accumulated components.
func (l *List) Len() int {
	return len(l.items)
}
