package objectid

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenRegex validates domain names and property keys/values. Values may
// additionally contain dots and slashes so fully qualified Go type names fit
// without quoting.
var (
	domainRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	keyRegex    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	valueRegex  = regexp.MustCompile(`^[a-zA-Z0-9_./-]+$`)
)

// Parse creates a Name from its canonical string representation. Malformed
// input is an error; callers at trust boundaries are expected to log it
// rather than propagate.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("identifier cannot be empty")
	}

	domain, rest, found := strings.Cut(raw, ":")
	if !found {
		return Name{}, fmt.Errorf("identifier %q has no domain separator", raw)
	}
	if !domainRegex.MatchString(domain) {
		return Name{}, fmt.Errorf("invalid identifier domain %q", domain)
	}

	n := Name{Domain: domain}
	if rest == "" {
		return Name{}, fmt.Errorf("identifier %q has no properties", raw)
	}

	seen := make(map[string]struct{})
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return Name{}, fmt.Errorf("identifier property %q is not key=value", pair)
		}
		if !keyRegex.MatchString(key) {
			return Name{}, fmt.Errorf("invalid identifier property key %q", key)
		}
		if !valueRegex.MatchString(value) {
			return Name{}, fmt.Errorf("invalid identifier property value %q", value)
		}
		if _, dup := seen[key]; dup {
			return Name{}, fmt.Errorf("duplicate identifier property key %q", key)
		}
		seen[key] = struct{}{}
		n.Props = append(n.Props, Prop{Key: key, Value: value})
	}

	return n, nil
}
