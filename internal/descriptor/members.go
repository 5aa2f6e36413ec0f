package descriptor

// Attribute describes one readable and/or writeable property of a component.
// GetMethod and SetMethod override the Get<Name>/Set<Name> accessor
// convention when the backing type uses different method names.
type Attribute struct {
	Name        string
	Type        string
	Description string
	Readable    bool
	Writeable   bool
	GetMethod   string
	SetMethod   string

	Fields []*Field
}

// NewAttribute returns an attribute that is readable and writeable until the
// document says otherwise.
func NewAttribute() *Attribute {
	return &Attribute{Readable: true, Writeable: true}
}

// AddField appends an arbitrary key/value field.
func (a *Attribute) AddField(f *Field) {
	a.Fields = append(a.Fields, f)
}

// Operation describes one invocable method of a component.
type Operation struct {
	Name        string
	Description string
	Impact      string
	Role        string
	ReturnType  string

	Parameters []*Parameter
	Fields     []*Field
}

// NewOperation returns an operation with the default "operation" role.
func NewOperation() *Operation {
	return &Operation{Impact: "UNKNOWN", Role: "operation"}
}

// AddParameter appends a parameter in document order.
func (o *Operation) AddParameter(p *Parameter) {
	o.Parameters = append(o.Parameters, p)
}

// AddField appends an arbitrary key/value field.
func (o *Operation) AddField(f *Field) {
	o.Fields = append(o.Fields, f)
}

// Notification describes one notification a component emits. NotifTypes lists
// the dispatchable notification type strings.
type Notification struct {
	Name        string
	Description string

	NotifTypes []string
	Fields     []*Field
}

// NewNotification returns an empty notification descriptor.
func NewNotification() *Notification {
	return &Notification{}
}

// AddNotifType appends one notification type string.
func (n *Notification) AddNotifType(t string) {
	n.NotifTypes = append(n.NotifTypes, t)
}

// AddField appends an arbitrary key/value field.
func (n *Notification) AddField(f *Field) {
	n.Fields = append(n.Fields, f)
}

// Parameter describes one operation argument.
type Parameter struct {
	Name        string
	Type        string
	Description string
}

// NewParameter returns an empty parameter descriptor.
func NewParameter() *Parameter {
	return &Parameter{}
}

// Field is an arbitrary key/value pair attached to a descriptor record.
type Field struct {
	Name  string
	Value string
}

// NewField returns an empty field record.
func NewField() *Field {
	return &Field{}
}
