package docparse

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/regentgo/internal/descriptor"
)

const poolDocument = `
component "jdbc-pool" {
  type        = "github.com/acme/dbkit.Pool"
  group       = "datasources"
  description = "Pooled connection source"

  attribute "maxActive" {
    type        = "int"
    description = "Upper bound on live connections"
  }

  attribute "active" {
    type      = "int"
    writeable = false
  }

  operation "Flush" {
    return_type = "int"
    impact      = "ACTION"

    parameter "force" {
      type = "bool"
    }

    field "role" {
      value = "maintenance"
    }
  }

  notification "exhausted" {
    types = ["pool.exhausted.hard", "pool.exhausted.soft"]

    field "severity" {
      value = "warn"
    }
  }
}
`

func TestParsePoolDocument(t *testing.T) {
	acc := &descriptor.List{}
	require.NoError(t, Parse(context.Background(), "pool.hcl", []byte(poolDocument), acc))
	require.Equal(t, 1, acc.Len())

	comp := acc.Components()[0]
	assert.Equal(t, "jdbc-pool", comp.Name)
	assert.Equal(t, "github.com/acme/dbkit.Pool", comp.Type)
	assert.Equal(t, "datasources", comp.Group)
	assert.Equal(t, "Pooled connection source", comp.Description)

	require.Len(t, comp.Attributes, 2)
	assert.Equal(t, "maxActive", comp.Attributes[0].Name)
	assert.Equal(t, "Upper bound on live connections", comp.Attributes[0].Description)
	assert.True(t, comp.Attributes[0].Writeable)
	assert.Equal(t, "active", comp.Attributes[1].Name)
	assert.False(t, comp.Attributes[1].Writeable)

	require.Len(t, comp.Operations, 1)
	op := comp.Operations[0]
	assert.Equal(t, "Flush", op.Name)
	assert.Equal(t, "int", op.ReturnType)
	assert.Equal(t, "ACTION", op.Impact)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "force", op.Parameters[0].Name)
	assert.Equal(t, "bool", op.Parameters[0].Type)
	require.Len(t, op.Fields, 1)
	assert.Equal(t, "role", op.Fields[0].Name)
	assert.Equal(t, "maintenance", op.Fields[0].Value)

	require.Len(t, comp.Notifications, 1)
	notif := comp.Notifications[0]
	assert.Equal(t, "exhausted", notif.Name)
	assert.Equal(t, []string{"pool.exhausted.hard", "pool.exhausted.soft"}, notif.NotifTypes)
	require.Len(t, notif.Fields, 1)
	assert.Equal(t, "severity", notif.Fields[0].Name)
}

func TestParseMultipleComponentsInOrder(t *testing.T) {
	doc := `
component "beta" {}
component "alpha" {}
`
	acc := &descriptor.List{}
	require.NoError(t, Parse(context.Background(), "multi.hcl", []byte(doc), acc))
	require.Equal(t, 2, acc.Len())
	assert.Equal(t, "beta", acc.Components()[0].Name)
	assert.Equal(t, "alpha", acc.Components()[1].Name)
}

func TestParseMalformed(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown root element",
			doc:  `widget "x" {}`,
		},
		{
			name: "unknown nested element",
			doc: `component "x" {
  gadget "y" {}
}`,
		},
		{
			name: "parameter outside operation",
			doc: `component "x" {
  parameter "y" {}
}`,
		},
		{
			name: "top-level attribute",
			doc:  `version = 3`,
		},
		{
			name: "notification types not a list",
			doc: `component "x" {
  notification "n" {
    types = "single"
  }
}`,
		},
		{
			name: "hcl syntax error",
			doc:  `component "x" {`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			acc := &descriptor.List{}
			err := Parse(context.Background(), "bad.hcl", []byte(tc.doc), acc)
			require.Error(t, err)
		})
	}
}

func TestParseUnmatchedAttributeIgnored(t *testing.T) {
	doc := `
component "x" {
  vendor = "acme"
}
`
	acc := &descriptor.List{}
	require.NoError(t, Parse(context.Background(), "lenient.hcl", []byte(doc), acc))
	require.Equal(t, 1, acc.Len())
	assert.Equal(t, "x", acc.Components()[0].Name)
}

func TestParseConcurrent(t *testing.T) {
	// Parses share one engine; the mutex must keep concurrent calls correct.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc := &descriptor.List{}
			err := Parse(context.Background(), "pool.hcl", []byte(poolDocument), acc)
			assert.NoError(t, err)
			assert.Equal(t, 1, acc.Len())
		}()
	}
	wg.Wait()
}

func TestRuleTableShape(t *testing.T) {
	blocks, scalars := buildRules()

	wantMethods := map[string]string{
		"component":                     "Add",
		"component/attribute":           "AddAttribute",
		"component/operation":           "AddOperation",
		"component/operation/parameter": "AddParameter",
		"component/operation/field":     "AddField",
		"component/notification":        "AddNotification",
		"component/notification/field":  "AddField",
	}
	require.Len(t, blocks, len(wantMethods))
	for path, method := range wantMethods {
		r, ok := blocks[path]
		require.True(t, ok, "missing rule for %s", path)
		assert.Equal(t, method, r.method, "accumulation method for %s", path)
	}

	require.Len(t, scalars, 1)
	sr := scalars["component/notification"]
	require.NotNil(t, sr)
	assert.Equal(t, "component/notification/notification-type", sr.path)
	assert.Equal(t, "AddNotifType", sr.method)
	assert.Equal(t, "types", sr.attr)
}
