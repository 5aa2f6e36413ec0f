// Package objectid models the structured identifier a component is registered
// under: a domain plus a set of key=value properties, written canonically as
// "domain:key=value,key=value" with the properties sorted by key.
package objectid

import (
	"sort"
	"strings"
)

// Prop is a single key=value property of an identifier.
type Prop struct {
	Key   string
	Value string
}

// Name is the structured representation of a component identifier.
type Name struct {
	Domain string
	Props  []Prop
}

// New builds a Name from a domain and alternating key, value pairs. It is a
// convenience for callers constructing identifiers in code; odd trailing
// arguments are dropped.
func New(domain string, kv ...string) Name {
	n := Name{Domain: domain}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Props = append(n.Props, Prop{Key: kv[i], Value: kv[i+1]})
	}
	return n
}

// String serializes the Name into its canonical form. Properties are sorted
// by key so two names carrying the same properties in different order render
// identically and can be used as map keys.
func (n Name) String() string {
	props := make([]Prop, len(n.Props))
	copy(props, n.Props)
	sort.Slice(props, func(i, j int) bool { return props[i].Key < props[j].Key })

	var sb strings.Builder
	sb.WriteString(n.Domain)
	sb.WriteByte(':')
	for i, p := range props {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// Prop returns the value of the named property and whether it is present.
func (n Name) Prop(key string) (string, bool) {
	for _, p := range n.Props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// IsZero reports whether the name carries no domain and no properties.
func (n Name) IsZero() bool {
	return n.Domain == "" && len(n.Props) == 0
}

// Equal compares two names by canonical form, ignoring property order.
func (n Name) Equal(other Name) bool {
	return n.String() == other.String()
}
