// Package mserver defines the component-server contract the registration
// workflow talks to, plus an in-memory implementation used by tests and
// single-process hosts. The wire protocol a remote management client would
// speak to a real server is out of scope here.
package mserver

import (
	"errors"

	"github.com/vk/regentgo/internal/adapter"
	"github.com/vk/regentgo/internal/objectid"
)

var (
	// ErrAlreadyRegistered is returned by Register when the identifier is
	// taken. The registration workflow avoids it by unregistering first.
	ErrAlreadyRegistered = errors.New("identifier already registered")

	// ErrNotRegistered is returned for operations on unknown identifiers.
	ErrNotRegistered = errors.New("identifier not registered")
)

// Server accepts adapters under structured identifiers and dispatches
// management calls to them.
type Server interface {
	// IsRegistered reports whether an adapter is registered under id.
	IsRegistered(id objectid.Name) bool

	// Register binds an adapter to id. Registering an id that is already
	// bound fails with ErrAlreadyRegistered.
	Register(a *adapter.Adapter, id objectid.Name) error

	// Unregister removes the binding for id, failing with ErrNotRegistered
	// when there is none.
	Unregister(id objectid.Name) error

	// Invoke calls a declared operation on the component registered under id.
	Invoke(id objectid.Name, operation string, args []any) (any, error)

	// Describe returns the declared surface of the component under id.
	Describe(id objectid.Name) (*adapter.Surface, bool)
}
