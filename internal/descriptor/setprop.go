package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// conversions maps a Go field kind to the cty conversion that populates it.
// Keeping this an explicit table (rather than a chain of type-name string
// comparisons) makes the set of document-settable field shapes auditable.
var conversions = map[reflect.Kind]func(cty.Value, reflect.Value) error{
	reflect.String:  convertAs(cty.String),
	reflect.Bool:    convertAs(cty.Bool),
	reflect.Int:     convertAs(cty.Number),
	reflect.Int64:   convertAs(cty.Number),
	reflect.Float64: convertAs(cty.Number),
}

func convertAs(want cty.Type) func(cty.Value, reflect.Value) error {
	return func(val cty.Value, field reflect.Value) error {
		converted, err := convert.Convert(val, want)
		if err != nil {
			return err
		}
		return gocty.FromCtyValue(converted, field.Addr().Interface())
	}
}

// SetProperty copies one document attribute onto the exported field of target
// whose normalized name matches (case-insensitive, separators stripped, so
// "return_type" binds ReturnType). It reports whether a field matched; an
// unmatched name is not an error — documents may carry fields a given record
// does not model.
func SetProperty(target any, name string, val cty.Value) (bool, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false, fmt.Errorf("property target must be a non-nil pointer, got %T", target)
	}
	v = v.Elem()
	t := v.Type()

	want := normalizeProp(name)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || normalizeProp(f.Name) != want {
			continue
		}
		conv, ok := conversions[f.Type.Kind()]
		if !ok {
			return false, fmt.Errorf("property %q: field kind %s is not document-settable", name, f.Type.Kind())
		}
		if err := conv(val, v.Field(i)); err != nil {
			return false, fmt.Errorf("property %q: %w", name, err)
		}
		return true, nil
	}
	return false, nil
}

var propReplacer = strings.NewReplacer("_", "", "-", "")

func normalizeProp(s string) string {
	return strings.ToLower(propReplacer.Replace(s))
}
