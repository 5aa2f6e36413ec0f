package mserver

import (
	"fmt"
	"sync"

	"github.com/vk/regentgo/internal/adapter"
	"github.com/vk/regentgo/internal/objectid"
)

// InMemory is a mutex-guarded in-process Server. Identifiers are keyed by
// canonical string form, so names carrying the same properties in different
// order address the same registration.
type InMemory struct {
	mu       sync.RWMutex
	adapters map[string]*adapter.Adapter
}

// NewInMemory creates an empty in-memory server.
func NewInMemory() *InMemory {
	return &InMemory{adapters: make(map[string]*adapter.Adapter)}
}

// IsRegistered reports whether an adapter is registered under id.
func (s *InMemory) IsRegistered(id objectid.Name) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.adapters[id.String()]
	return ok
}

// Register binds an adapter to id.
func (s *InMemory) Register(a *adapter.Adapter, id objectid.Name) error {
	if a == nil {
		return fmt.Errorf("register %s: nil adapter", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := id.String()
	if _, ok := s.adapters[key]; ok {
		return fmt.Errorf("register %s: %w", id, ErrAlreadyRegistered)
	}
	s.adapters[key] = a
	return nil
}

// Unregister removes the binding for id.
func (s *InMemory) Unregister(id objectid.Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := id.String()
	if _, ok := s.adapters[key]; !ok {
		return fmt.Errorf("unregister %s: %w", id, ErrNotRegistered)
	}
	delete(s.adapters, key)
	return nil
}

// Invoke calls a declared operation on the component registered under id.
func (s *InMemory) Invoke(id objectid.Name, operation string, args []any) (any, error) {
	s.mu.RLock()
	a, ok := s.adapters[id.String()]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("invoke %s: %w", id, ErrNotRegistered)
	}
	return a.Invoke(operation, args)
}

// Describe returns the declared surface of the component under id.
func (s *InMemory) Describe(id objectid.Name) (*adapter.Surface, bool) {
	s.mu.RLock()
	a, ok := s.adapters[id.String()]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return a.Describe(), true
}

// Registered returns the canonical identifiers currently bound, mainly for
// diagnostics and tests.
func (s *InMemory) Registered() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.adapters))
	for k := range s.adapters {
		keys = append(keys, k)
	}
	return keys
}
