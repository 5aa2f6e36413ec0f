package loader

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/regentgo/internal/descriptor"
	"github.com/vk/regentgo/internal/docparse"
	"github.com/vk/regentgo/internal/introspect"
	"github.com/vk/regentgo/internal/yamldoc"
)

// hclStrategy feeds document bytes through the rule-based parser. A failed
// parse discards the accumulator, so no partial output escapes.
type hclStrategy struct{}

func (s *hclStrategy) LoadDescriptors(ctx context.Context, typeHint string, location string, source any) ([]*descriptor.Component, error) {
	data, ok := source.([]byte)
	if !ok {
		return nil, fmt.Errorf("hcl strategy: want document bytes, got %T", source)
	}
	acc := &descriptor.List{}
	if err := docparse.Parse(ctx, location, data, acc); err != nil {
		return nil, err
	}
	return acc.Components(), nil
}

// yamlStrategy parses a schema-validated YAML document.
type yamlStrategy struct{}

func (s *yamlStrategy) LoadDescriptors(ctx context.Context, typeHint string, location string, source any) ([]*descriptor.Component, error) {
	data, ok := source.([]byte)
	if !ok {
		return nil, fmt.Errorf("yaml strategy: want document bytes, got %T", source)
	}
	acc := &descriptor.List{}
	if err := yamldoc.Parse(ctx, location, data, acc); err != nil {
		return nil, err
	}
	return acc.Components(), nil
}

// introspectionStrategy synthesizes a descriptor from a Go type. A non-empty
// type hint overrides the derived name so the result is resolvable under the
// key the caller asked for.
type introspectionStrategy struct{}

func (s *introspectionStrategy) LoadDescriptors(ctx context.Context, typeHint string, location string, source any) ([]*descriptor.Component, error) {
	t, ok := source.(reflect.Type)
	if !ok {
		return nil, fmt.Errorf("introspection strategy: want reflect.Type, got %T", source)
	}
	comp, err := introspect.Introspect(t)
	if err != nil {
		return nil, err
	}
	if typeHint != "" {
		comp.Name = typeHint
		comp.Type = typeHint
	}
	return []*descriptor.Component{comp}, nil
}
