package adapter

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/vk/regentgo/internal/descriptor"
)

// bindGetter resolves the read access path for one attribute: the descriptor's
// explicit get method, the Get<Name>/Is<Name> convention, or direct exported
// field access, in that order.
func bindGetter(v reflect.Value, attr *descriptor.Attribute) (func() (any, error), error) {
	candidates := []string{attr.GetMethod}
	if attr.GetMethod == "" {
		candidates = []string{"Get" + upperFirst(attr.Name), "Is" + upperFirst(attr.Name)}
	}

	for _, name := range candidates {
		if name == "" {
			continue
		}
		m := v.MethodByName(name)
		if !m.IsValid() {
			continue
		}
		mt := m.Type()
		if mt.NumIn() != 0 || mt.NumOut() != 1 {
			return nil, fmt.Errorf("attribute %q: method %s is not a getter", attr.Name, name)
		}
		return func() (any, error) {
			return m.Call(nil)[0].Interface(), nil
		}, nil
	}

	if field, ok := fieldByAttr(v, attr.Name); ok {
		return func() (any, error) {
			return field.Interface(), nil
		}, nil
	}

	return nil, fmt.Errorf("attribute %q: no getter method or exported field", attr.Name)
}

// bindSetter resolves the write access path: explicit set method, Set<Name>
// convention, or settable exported field.
func bindSetter(v reflect.Value, attr *descriptor.Attribute) (func(any) error, error) {
	name := attr.SetMethod
	if name == "" {
		name = "Set" + upperFirst(attr.Name)
	}

	if m := v.MethodByName(name); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() != 1 || mt.NumOut() > 1 {
			return nil, fmt.Errorf("attribute %q: method %s is not a setter", attr.Name, name)
		}
		argType := mt.In(0)
		return func(value any) error {
			arg, err := coerce(value, argType)
			if err != nil {
				return fmt.Errorf("attribute %q: %w", attr.Name, err)
			}
			out := m.Call([]reflect.Value{arg})
			if len(out) == 1 {
				if err, ok := out[0].Interface().(error); ok && err != nil {
					return err
				}
			}
			return nil
		}, nil
	}

	if field, ok := fieldByAttr(v, attr.Name); ok && field.CanSet() {
		return func(value any) error {
			arg, err := coerce(value, field.Type())
			if err != nil {
				return fmt.Errorf("attribute %q: %w", attr.Name, err)
			}
			field.Set(arg)
			return nil
		}, nil
	}

	return nil, fmt.Errorf("attribute %q: no setter method or settable field", attr.Name)
}

// bindOperation resolves an operation to a bound method value and wraps the
// call with argument arity/type checking. A trailing error return is
// unwrapped into the invocation error.
func bindOperation(v reflect.Value, op *descriptor.Operation) (func(args []any) (any, error), error) {
	m := v.MethodByName(op.Name)
	if !m.IsValid() {
		return nil, fmt.Errorf("operation %q: no such method", op.Name)
	}
	mt := m.Type()
	if want, got := mt.NumIn(), len(op.Parameters); want != got {
		return nil, fmt.Errorf("operation %q: descriptor declares %d parameters, method takes %d", op.Name, got, want)
	}

	return func(args []any) (any, error) {
		if len(args) != mt.NumIn() {
			return nil, fmt.Errorf("operation %q: want %d arguments, got %d", op.Name, mt.NumIn(), len(args))
		}
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			coerced, err := coerce(arg, mt.In(i))
			if err != nil {
				return nil, fmt.Errorf("operation %q argument %d: %w", op.Name, i, err)
			}
			in[i] = coerced
		}

		out := m.Call(in)
		var result any
		for i := len(out) - 1; i >= 0; i-- {
			if err, ok := out[i].Interface().(error); ok {
				if err != nil {
					return nil, err
				}
				continue
			}
			result = out[i].Interface()
		}
		return result, nil
	}, nil
}

// coerce converts a dynamic argument to the required parameter type.
func coerce(value any, want reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type() == want {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(want) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", value, want)
}

// fieldByAttr locates the exported struct field backing an attribute name.
func fieldByAttr(v reflect.Value, attrName string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	field := v.FieldByName(upperFirst(attrName))
	if !field.IsValid() {
		return reflect.Value{}, false
	}
	return field, true
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
