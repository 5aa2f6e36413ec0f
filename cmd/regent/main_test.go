package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.hcl", `
component "cache" {
  type = "github.com/acme/cachekit.LRU"
}
`)
	bad := writeDoc(t, dir, "bad.hcl", `widget "x" {}`)

	t.Run("valid document", func(t *testing.T) {
		out, err := run(t, "validate", good)
		require.NoError(t, err)
		assert.Contains(t, out, "ok")
		assert.Contains(t, out, "1 components")
	})

	t.Run("invalid document", func(t *testing.T) {
		out, err := run(t, "validate", bad)
		require.Error(t, err)
		assert.Contains(t, out, "FAIL")
	})

	t.Run("mixed directory", func(t *testing.T) {
		_, err := run(t, "validate", dir)
		require.Error(t, err)
	})
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "managed.hcl", `
component "cache" {
  type  = "github.com/acme/cachekit.LRU"
  group = "caches"

  attribute "size" {
    type = "int"
  }

  operation "Flush" {}
}
`)
	writeDoc(t, dir, "managed.yaml", `
components:
  - name: pool
    type: github.com/acme/dbkit.Pool
`)

	out, err := run(t, "inspect", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "cache")
	assert.Contains(t, out, "pool")
}
