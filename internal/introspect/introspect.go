// Package introspect synthesizes a component descriptor directly from a Go
// type's reflective surface. It is the universal fallback when no descriptor
// document declares the type: exported fields and Get/Set/Is accessor pairs
// become attributes, the remaining exported methods become operations.
package introspect

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/vk/regentgo/internal/descriptor"
)

// Introspect derives a descriptor for t. Both the descriptor name and type
// are the fully qualified type name, so the result is resolvable under the
// same key a document-declared descriptor would use.
func Introspect(t reflect.Type) (*descriptor.Component, error) {
	if t == nil {
		return nil, fmt.Errorf("introspect: nil type")
	}

	ptr := t
	if ptr.Kind() != reflect.Pointer {
		ptr = reflect.PointerTo(ptr)
	}
	elem := ptr.Elem()
	if elem.Name() == "" {
		return nil, fmt.Errorf("introspect: %s is not a named type", elem.String())
	}

	comp := descriptor.NewComponent()
	comp.Name = TypeName(elem)
	comp.Type = comp.Name

	accessors := collectAccessors(ptr)
	claimed := make(map[string]bool)

	for _, acc := range accessors {
		attr := descriptor.NewAttribute()
		attr.Name = lowerFirst(acc.property)
		attr.Type = TypeName(acc.valueType)
		attr.GetMethod = acc.getter
		attr.SetMethod = acc.setter
		attr.Readable = acc.getter != ""
		attr.Writeable = acc.setter != ""
		comp.AddAttribute(attr)
		claimed[attr.Name] = true
		if acc.getter != "" {
			claimed[acc.getter] = true
		}
		if acc.setter != "" {
			claimed[acc.setter] = true
		}
	}

	if elem.Kind() == reflect.Struct {
		for i := 0; i < elem.NumField(); i++ {
			field := elem.Field(i)
			if !field.IsExported() || field.Anonymous || !manageableKind(field.Type.Kind()) {
				continue
			}
			name := lowerFirst(field.Name)
			if claimed[name] {
				continue
			}
			attr := descriptor.NewAttribute()
			attr.Name = name
			attr.Type = TypeName(field.Type)
			comp.AddAttribute(attr)
			claimed[name] = true
		}
	}

	for i := 0; i < ptr.NumMethod(); i++ {
		method := ptr.Method(i)
		if claimed[method.Name] {
			continue
		}
		op := descriptor.NewOperation()
		op.Name = method.Name
		// NumIn includes the receiver for concrete types.
		for j := 1; j < method.Type.NumIn(); j++ {
			param := descriptor.NewParameter()
			param.Name = fmt.Sprintf("p%d", j-1)
			param.Type = TypeName(method.Type.In(j))
			op.AddParameter(param)
		}
		if method.Type.NumOut() > 0 {
			op.ReturnType = TypeName(method.Type.Out(0))
		}
		comp.AddOperation(op)
	}

	return comp, nil
}

// accessor is a Get/Is + Set method pair discovered for one property.
type accessor struct {
	property  string
	getter    string
	setter    string
	valueType reflect.Type
}

// collectAccessors pairs Get<X>/Is<X> and Set<X> methods by property name,
// in method order so the derived attribute list is deterministic.
func collectAccessors(ptr reflect.Type) []*accessor {
	byProp := make(map[string]*accessor)
	var order []string

	record := func(prop string) *accessor {
		if acc, ok := byProp[prop]; ok {
			return acc
		}
		acc := &accessor{property: prop}
		byProp[prop] = acc
		order = append(order, prop)
		return acc
	}

	for i := 0; i < ptr.NumMethod(); i++ {
		method := ptr.Method(i)
		mt := method.Type

		switch {
		case strings.HasPrefix(method.Name, "Get") && len(method.Name) > 3 &&
			mt.NumIn() == 1 && mt.NumOut() == 1:
			acc := record(method.Name[3:])
			acc.getter = method.Name
			acc.valueType = mt.Out(0)
		case strings.HasPrefix(method.Name, "Is") && len(method.Name) > 2 &&
			mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool:
			acc := record(method.Name[2:])
			acc.getter = method.Name
			acc.valueType = mt.Out(0)
		case strings.HasPrefix(method.Name, "Set") && len(method.Name) > 3 &&
			mt.NumIn() == 2 && mt.NumOut() <= 1:
			acc := record(method.Name[3:])
			acc.setter = method.Name
			if acc.valueType == nil {
				acc.valueType = mt.In(1)
			}
		}
	}

	result := make([]*accessor, 0, len(order))
	for _, prop := range order {
		result = append(result, byProp[prop])
	}
	return result
}

// TypeName renders the fully qualified name of a type, "pkg/path.TypeName"
// for package-level types and the plain kind string for builtins. Pointers
// are unwrapped so *T and T share a descriptor key.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	return t.String()
}

// Namespace returns the package path portion of a fully qualified type name,
// or "" for builtins.
func Namespace(typeName string) string {
	if i := strings.LastIndex(typeName, "."); i > 0 {
		return typeName[:i]
	}
	return ""
}

func manageableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
