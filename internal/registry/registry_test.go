package registry

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/regentgo/internal/descriptor"
	"github.com/vk/regentgo/internal/introspect"
	"github.com/vk/regentgo/internal/locator"
)

type pool struct {
	MaxActive int
}

func (p *pool) Flush() int { return p.MaxActive }

type valve struct {
	Open bool
}

// poolTypeName is the key the resolver derives for *pool.
func poolTypeName() string {
	return introspect.TypeName(reflect.TypeOf(&pool{}))
}

func writeDoc(t *testing.T, dir, namespace, contents string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(namespace))
	require.NoError(t, os.MkdirAll(full, 0o755))
	path := filepath.Join(full, locator.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFindDescriptor(t *testing.T) {
	r := New(Options{})

	comp := descriptor.NewComponent()
	comp.Name = "jdbc-pool"
	comp.Type = "github.com/acme/dbkit.Pool"
	r.AddManagedComponent(comp)

	assert.Same(t, comp, r.FindDescriptor("jdbc-pool"))
	assert.Same(t, comp, r.FindDescriptor("github.com/acme/dbkit.Pool"))
	assert.Nil(t, r.FindDescriptor("absent"))

	require.Len(t, r.Descriptors(), 1)
}

func TestResolveFromDocument(t *testing.T) {
	dir := t.TempDir()
	ns := introspect.Namespace(poolTypeName())
	path := writeDoc(t, dir, ns, `
component "worker-pool" {
  type  = "`+poolTypeName()+`"
  group = "pools"

  attribute "maxActive" {
    type = "int"
  }
}
`)

	r := New(Options{Locator: locator.Map{ns: path}})

	d := r.Resolve(context.Background(), &pool{}, nil, "")
	require.NotNil(t, d)
	assert.Equal(t, "worker-pool", d.Name, "document descriptor wins over introspection")
	assert.Equal(t, int64(1), r.SearchCount())

	// Second resolution is a pure store lookup.
	again := r.Resolve(context.Background(), &pool{}, nil, "")
	assert.Same(t, d, again)
	assert.Equal(t, int64(1), r.SearchCount())
}

func TestResolveFallsBackToIntrospection(t *testing.T) {
	r := New(Options{})

	d := r.Resolve(context.Background(), &pool{}, nil, "")
	require.NotNil(t, d)
	assert.Equal(t, poolTypeName(), d.Type)
	require.NotNil(t, d.Attribute("maxActive"))
	require.NotNil(t, d.Operation("Flush"))

	probes := r.SearchCount()
	assert.Greater(t, probes, int64(0))

	// The whole package hierarchy is memoized, so a second type from the
	// same package skips the document search entirely.
	d2 := r.Resolve(context.Background(), &valve{}, nil, "")
	require.NotNil(t, d2)
	assert.Equal(t, probes, r.SearchCount())
}

func TestResolveWalksHierarchyUpward(t *testing.T) {
	dir := t.TempDir()

	// The type's own namespace has a document, but it declares a different
	// component; the sought type is declared one level up.
	writeDoc(t, dir, "github.com/acme/dbkit", `
component "other" {
  type = "github.com/acme/dbkit.Statement"
}
`)
	writeDoc(t, dir, "github.com/acme", `
component "jdbc-pool" {
  type = "github.com/acme/dbkit.Pool"
}
`)

	r := New(Options{SearchRoots: []string{dir}})

	d := r.Resolve(context.Background(), nil, nil, "github.com/acme/dbkit.Pool")
	require.NotNil(t, d)
	assert.Equal(t, "jdbc-pool", d.Name)
	assert.Equal(t, int64(2), r.SearchCount())

	// The sibling declared along the way was committed too.
	assert.NotNil(t, r.FindDescriptor("github.com/acme/dbkit.Statement"))
}

func TestResolveUnknownHintWithoutType(t *testing.T) {
	r := New(Options{})

	// No instance and no type means no introspection fallback.
	assert.Nil(t, r.Resolve(context.Background(), nil, nil, "github.com/acme/ghost.Thing"))
	assert.Nil(t, r.Resolve(context.Background(), nil, nil, ""))
}

func TestResolveUnparsableDocumentIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	ns := introspect.Namespace(poolTypeName())
	path := writeDoc(t, dir, ns, `widget "broken" {}`)

	r := New(Options{Locator: locator.Map{ns: path}})

	// The broken document is skipped and introspection still produces
	// a descriptor.
	d := r.Resolve(context.Background(), &pool{}, nil, "")
	require.NotNil(t, d)
	assert.Equal(t, poolTypeName(), d.Type)
}

func TestReset(t *testing.T) {
	r := New(Options{})

	require.NotNil(t, r.Resolve(context.Background(), &pool{}, nil, ""))
	probes := r.SearchCount()
	id0 := r.AllocateID("events", "pool.exhausted")

	r.Reset()

	assert.Nil(t, r.FindDescriptor(poolTypeName()))
	assert.Empty(t, r.Descriptors())

	// Namespace memos are gone, so resolution probes again.
	require.NotNil(t, r.Resolve(context.Background(), &pool{}, nil, ""))
	assert.Greater(t, r.SearchCount(), probes)

	// Issued integers survive: consumers hold them across a reload.
	assert.Equal(t, id0, r.AllocateID("events", "pool.exhausted"))
	assert.Equal(t, id0+1, r.AllocateID("events", "pool.drained"))
}

func TestLoadRegistersDescriptors(t *testing.T) {
	r := New(Options{})

	ids, err := r.Load(context.Background(), "", []byte(`
component "jdbc-pool" {
  type  = "github.com/acme/dbkit.Pool"
  group = "datasources"
}
`), "")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "datasources:name=jdbc-pool", ids[0].String())
	assert.NotNil(t, r.FindDescriptor("jdbc-pool"))
}

func TestAllocateIDIdempotent(t *testing.T) {
	r := New(Options{})

	first := r.AllocateID("events", "a")
	assert.Equal(t, 0, first)
	assert.Equal(t, first, r.AllocateID("events", "a"))
	assert.Equal(t, 1, r.AllocateID("events", "b"))
	assert.Equal(t, 0, r.AllocateID("other", "a"))
}
