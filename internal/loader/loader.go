// Package loader turns descriptor sources — document files, raw streams, or
// Go types — into registered descriptors. The parsing algorithm is picked by
// strategy name from a small registry; when the caller does not name one, the
// source's shape decides: document locators by extension, types via
// introspection, plain streams default to the HCL rule-based parser.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/vk/regentgo/internal/ctxlog"
	"github.com/vk/regentgo/internal/descriptor"
	"github.com/vk/regentgo/internal/objectid"
)

// Strategy names understood by the loader.
const (
	StrategyHCL           = "descriptors-hcl"
	StrategyYAML          = "descriptors-yaml"
	StrategyIntrospection = "introspection"
)

// ErrUnknownStrategy is returned for a strategy name the registry does not know.
var ErrUnknownStrategy = errors.New("loader strategy not found")

// Strategy produces fully built descriptors from one source. Implementations
// must be default-constructible; the loader instantiates them by name per call.
type Strategy interface {
	LoadDescriptors(ctx context.Context, typeHint string, location string, source any) ([]*descriptor.Component, error)
}

// strategies maps strategy names to their constructors.
var strategies = map[string]func() Strategy{
	StrategyHCL:           func() Strategy { return &hclStrategy{} },
	StrategyYAML:          func() Strategy { return &yamlStrategy{} },
	StrategyIntrospection: func() Strategy { return &introspectionStrategy{} },
}

// Sink receives every descriptor a load produces. The descriptor store
// implements it; the loader itself keeps no state between calls.
type Sink interface {
	AddManagedComponent(*descriptor.Component)
}

// Loader dispatches load requests to strategies and registers the results.
type Loader struct {
	sink Sink
}

// New creates a loader feeding the given sink.
func New(sink Sink) *Loader {
	return &Loader{sink: sink}
}

// Load parses source with the named strategy (inferred from the source's
// shape when sourceKind is empty), registers every produced descriptor into
// the sink, and returns the corresponding identifiers.
func (l *Loader) Load(ctx context.Context, sourceKind string, source any, param string) ([]objectid.Name, error) {
	logger := ctxlog.FromContext(ctx)

	location := ""
	var input any

	switch src := source.(type) {
	case string:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("opening descriptor source: %w", err)
		}
		location = src
		input = data
		if sourceKind == "" {
			sourceKind = kindForLocation(src)
		}
	case io.Reader:
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("reading descriptor source: %w", err)
		}
		location = "stream"
		input = data
	case []byte:
		location = "stream"
		input = src
	case reflect.Type:
		location = src.String()
		input = src
		if sourceKind == "" {
			sourceKind = StrategyIntrospection
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor source %T", source)
	}

	if sourceKind == "" {
		sourceKind = StrategyHCL
	}

	construct, ok := strategies[sourceKind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, sourceKind)
	}

	logger.Debug("Loading descriptors.", "strategy", sourceKind, "location", location)
	components, err := construct().LoadDescriptors(ctx, param, location, input)
	if err != nil {
		return nil, err
	}

	ids := make([]objectid.Name, 0, len(components))
	for _, comp := range components {
		l.sink.AddManagedComponent(comp)
		ids = append(ids, DefaultID(comp))
	}
	return ids, nil
}

// DefaultID derives the registration identifier for a descriptor: the
// component's group as the domain ("components" when ungrouped) and the
// logical name as the sole property.
func DefaultID(comp *descriptor.Component) objectid.Name {
	domain := comp.Group
	if domain == "" {
		domain = "components"
	}
	return objectid.New(domain, "name", comp.Name)
}

// kindForLocation infers the strategy from a document locator's extension.
func kindForLocation(location string) string {
	switch filepath.Ext(location) {
	case ".hcl":
		return StrategyHCL
	case ".yaml", ".yml":
		return StrategyYAML
	default:
		return ""
	}
}
