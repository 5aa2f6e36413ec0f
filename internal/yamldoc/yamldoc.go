// Package yamldoc parses YAML descriptor documents. It accepts the same
// component/attribute/operation/notification model as the HCL rule-based
// parser but validates the document against an embedded JSON Schema before
// mapping it, so schema violations carry instance paths instead of surfacing
// as half-built descriptors.
package yamldoc

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"

	"github.com/vk/regentgo/internal/ctxlog"
	"github.com/vk/regentgo/internal/descriptor"
)

//go:embed schema/descriptor.schema.json
var schemaBytes []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// getSchema compiles the embedded schema once per process.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("descriptor.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("descriptor.schema.json")
	})
	return compiledSchema, compileErr
}

// document mirrors the YAML layout before mapping onto descriptor objects.
type document struct {
	Components []componentDoc `yaml:"components"`
}

type componentDoc struct {
	Name          string            `yaml:"name"`
	Type          string            `yaml:"type"`
	Group         string            `yaml:"group"`
	Description   string            `yaml:"description"`
	Attributes    []attributeDoc    `yaml:"attributes"`
	Operations    []operationDoc    `yaml:"operations"`
	Notifications []notificationDoc `yaml:"notifications"`
}

type attributeDoc struct {
	Name        string     `yaml:"name"`
	Type        string     `yaml:"type"`
	Description string     `yaml:"description"`
	Readable    *bool      `yaml:"readable"`
	Writeable   *bool      `yaml:"writeable"`
	GetMethod   string     `yaml:"get_method"`
	SetMethod   string     `yaml:"set_method"`
	Fields      []fieldDoc `yaml:"fields"`
}

type operationDoc struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Impact      string         `yaml:"impact"`
	Role        string         `yaml:"role"`
	ReturnType  string         `yaml:"return_type"`
	Parameters  []parameterDoc `yaml:"parameters"`
	Fields      []fieldDoc     `yaml:"fields"`
}

type parameterDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type notificationDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Types       []string   `yaml:"types"`
	Fields      []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Parse validates and maps one YAML descriptor document, appending every
// component in document order onto acc. Nothing is appended on error.
func Parse(ctx context.Context, filename string, src []byte, acc *descriptor.List) error {
	logger := ctxlog.FromContext(ctx)

	schema, err := getSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("validating %s: %w", filename, err)
	}

	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	for _, cd := range doc.Components {
		acc.Add(mapComponent(cd))
	}
	logger.Debug("Parsed YAML descriptor document.", "file", filename, "components", len(doc.Components))
	return nil
}

func mapComponent(cd componentDoc) *descriptor.Component {
	comp := descriptor.NewComponent()
	comp.Name = cd.Name
	comp.Type = cd.Type
	comp.Group = cd.Group
	comp.Description = cd.Description

	for _, ad := range cd.Attributes {
		attr := descriptor.NewAttribute()
		attr.Name = ad.Name
		attr.Type = ad.Type
		attr.Description = ad.Description
		attr.GetMethod = ad.GetMethod
		attr.SetMethod = ad.SetMethod
		if ad.Readable != nil {
			attr.Readable = *ad.Readable
		}
		if ad.Writeable != nil {
			attr.Writeable = *ad.Writeable
		}
		for _, fd := range ad.Fields {
			attr.AddField(&descriptor.Field{Name: fd.Name, Value: fd.Value})
		}
		comp.AddAttribute(attr)
	}

	for _, od := range cd.Operations {
		op := descriptor.NewOperation()
		op.Name = od.Name
		op.Description = od.Description
		if od.Impact != "" {
			op.Impact = od.Impact
		}
		if od.Role != "" {
			op.Role = od.Role
		}
		op.ReturnType = od.ReturnType
		for _, pd := range od.Parameters {
			op.AddParameter(&descriptor.Parameter{Name: pd.Name, Type: pd.Type, Description: pd.Description})
		}
		for _, fd := range od.Fields {
			op.AddField(&descriptor.Field{Name: fd.Name, Value: fd.Value})
		}
		comp.AddOperation(op)
	}

	for _, nd := range cd.Notifications {
		notif := descriptor.NewNotification()
		notif.Name = nd.Name
		notif.Description = nd.Description
		for _, t := range nd.Types {
			notif.AddNotifType(t)
		}
		for _, fd := range nd.Fields {
			notif.AddField(&descriptor.Field{Name: fd.Name, Value: fd.Value})
		}
		comp.AddNotification(notif)
	}

	return comp
}
