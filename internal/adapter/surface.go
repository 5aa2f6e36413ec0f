package adapter

// Surface is the externally visible description of an adapter: exactly the
// declared attributes and operations, nothing reflective. The management
// server hands this out to callers probing a component before invoking it.
type Surface struct {
	Name       string
	Type       string
	Attributes []AttributeInfo
	Operations []OperationInfo
}

// AttributeInfo summarizes one declared attribute.
type AttributeInfo struct {
	Name      string
	Type      string
	Readable  bool
	Writeable bool
}

// OperationInfo summarizes one declared operation.
type OperationInfo struct {
	Name       string
	ReturnType string
	Parameters []ParameterInfo
}

// ParameterInfo summarizes one declared operation parameter.
type ParameterInfo struct {
	Name string
	Type string
}

// Describe renders the adapter's declared surface.
func (a *Adapter) Describe() *Surface {
	s := &Surface{Name: a.desc.Name, Type: a.desc.Type}

	for _, attr := range a.desc.Attributes {
		s.Attributes = append(s.Attributes, AttributeInfo{
			Name:      attr.Name,
			Type:      attr.Type,
			Readable:  attr.Readable,
			Writeable: attr.Writeable,
		})
	}

	for _, op := range a.desc.Operations {
		info := OperationInfo{Name: op.Name, ReturnType: op.ReturnType}
		for _, p := range op.Parameters {
			info.Parameters = append(info.Parameters, ParameterInfo{Name: p.Name, Type: p.Type})
		}
		s.Operations = append(s.Operations, info)
	}

	return s
}

// Operation returns the summary for the named operation, or nil.
func (s *Surface) Operation(name string) *OperationInfo {
	for i := range s.Operations {
		if s.Operations[i].Name == name {
			return &s.Operations[i]
		}
	}
	return nil
}

// Attribute returns the summary for the named attribute, or nil.
func (s *Surface) Attribute(name string) *AttributeInfo {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			return &s.Attributes[i]
		}
	}
	return nil
}
