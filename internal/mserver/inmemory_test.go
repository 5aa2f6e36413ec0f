package mserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/regentgo/internal/adapter"
	"github.com/vk/regentgo/internal/descriptor"
	"github.com/vk/regentgo/internal/objectid"
)

type counter struct {
	N int
}

func (c *counter) Bump() int { c.N++; return c.N }

func counterAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()

	comp := descriptor.NewComponent()
	comp.Name = "counter"
	n := descriptor.NewAttribute()
	n.Name = "n"
	comp.AddAttribute(n)
	op := descriptor.NewOperation()
	op.Name = "Bump"
	comp.AddOperation(op)

	a, err := adapter.Build(comp, &counter{})
	require.NoError(t, err)
	return a
}

func TestRegisterLifecycle(t *testing.T) {
	s := NewInMemory()
	id := objectid.New("metrics", "name", "requests")

	assert.False(t, s.IsRegistered(id))
	require.NoError(t, s.Register(counterAdapter(t), id))
	assert.True(t, s.IsRegistered(id))

	err := s.Register(counterAdapter(t), id)
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	require.NoError(t, s.Unregister(id))
	assert.False(t, s.IsRegistered(id))
	require.ErrorIs(t, s.Unregister(id), ErrNotRegistered)
}

func TestPropertyOrderIrrelevant(t *testing.T) {
	s := NewInMemory()
	require.NoError(t, s.Register(counterAdapter(t),
		objectid.New("metrics", "name", "requests", "type", "counter")))

	reordered := objectid.New("metrics", "type", "counter", "name", "requests")
	assert.True(t, s.IsRegistered(reordered))
}

func TestInvokeAndDescribe(t *testing.T) {
	s := NewInMemory()
	id := objectid.New("metrics", "name", "requests")
	require.NoError(t, s.Register(counterAdapter(t), id))

	got, err := s.Invoke(id, "Bump", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	got, err = s.Invoke(id, "Bump", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	surface, ok := s.Describe(id)
	require.True(t, ok)
	assert.Equal(t, "counter", surface.Name)
	require.NotNil(t, surface.Operation("Bump"))

	_, err = s.Invoke(objectid.New("metrics", "name", "other"), "Bump", nil)
	require.ErrorIs(t, err, ErrNotRegistered)
	_, ok = s.Describe(objectid.New("metrics", "name", "other"))
	assert.False(t, ok)
}

func TestRegisterNilAdapter(t *testing.T) {
	s := NewInMemory()
	require.Error(t, s.Register(nil, objectid.New("metrics", "name", "x")))
	assert.Empty(t, s.Registered())
}
