package registry

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vk/regentgo/internal/ctxlog"
	"github.com/vk/regentgo/internal/descriptor"
	"github.com/vk/regentgo/internal/idalloc"
	"github.com/vk/regentgo/internal/introspect"
	"github.com/vk/regentgo/internal/loader"
	"github.com/vk/regentgo/internal/locator"
	"github.com/vk/regentgo/internal/mserver"
	"github.com/vk/regentgo/internal/objectid"
)

// Registry holds descriptor metadata and drives component registration for
// one host application instance.
type Registry struct {
	// mu guards the three descriptor maps, which Reset replaces together.
	mu       sync.RWMutex
	byName   map[string]*descriptor.Component
	byType   map[string]*descriptor.Component
	searched map[string]string // namespace -> document path, "" marks a confirmed miss

	// resolveMu serializes the whole search-and-maybe-populate sequence so
	// two callers resolving the same type do not both parse the same
	// namespace document. Duplicate parses would be wasteful, not unsafe.
	resolveMu sync.Mutex

	// searches counts namespace probes, observable by tests asserting the
	// at-most-once-per-namespace property.
	searches atomic.Int64

	ids     *idalloc.Allocator
	loader  *loader.Loader
	locator locator.Locator
	server  mserver.Server
}

// Options configures a Registry. Zero-value fields get in-process defaults.
type Options struct {
	// Server is the component server registrations are pushed to.
	Server mserver.Server

	// Locator finds descriptor documents by namespace.
	Locator locator.Locator

	// SearchRoots is a convenience alternative to Locator: directories
	// searched for <namespace>/managed.hcl documents.
	SearchRoots []string
}

// New creates a Registry.
func New(opts Options) *Registry {
	if opts.Server == nil {
		opts.Server = mserver.NewInMemory()
	}
	if opts.Locator == nil {
		if len(opts.SearchRoots) > 0 {
			opts.Locator = locator.NewFS(opts.SearchRoots...)
		} else {
			opts.Locator = locator.Map{}
		}
	}

	r := &Registry{
		byName:   make(map[string]*descriptor.Component),
		byType:   make(map[string]*descriptor.Component),
		searched: make(map[string]string),
		ids:      idalloc.New(),
		locator:  opts.Locator,
		server:   opts.Server,
	}
	r.loader = loader.New(r)
	return r
}

// Server returns the component server this registry registers with.
func (r *Registry) Server() mserver.Server {
	return r.server
}

// Load parses a descriptor source with the named strategy (inferred when
// empty) and registers every produced descriptor. See loader.Loader.Load.
func (r *Registry) Load(ctx context.Context, sourceKind string, source any, param string) ([]objectid.Name, error) {
	return r.loader.Load(ctx, sourceKind, source, param)
}

// AddManagedComponent adds a descriptor under its logical name and, when the
// backing type is known, under the type name too. Writes for the same key are
// expected to be idempotent; last write wins.
func (r *Registry) AddManagedComponent(d *descriptor.Component) {
	if d == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[d.Name] = d
	if d.Type != "" {
		r.byType[d.Type] = d
	}
}

// FindDescriptor returns the descriptor stored under the given logical name
// or backing-type name, or nil.
func (r *Registry) FindDescriptor(name string) *descriptor.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(name)
}

// find is FindDescriptor without locking; callers hold mu.
func (r *Registry) find(name string) *descriptor.Component {
	if d, ok := r.byName[name]; ok {
		return d
	}
	return r.byType[name]
}

// Descriptors returns all stored descriptors sorted by name, for diagnostics.
func (r *Registry) Descriptors() []*descriptor.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*descriptor.Component, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllocateID returns the stable dense integer for a (domain, name) pair,
// used for fast notification dispatch. Issued integers survive Reset.
func (r *Registry) AllocateID(domain, name string) int {
	return r.ids.Allocate(domain, name)
}

// SearchCount reports how many namespace probes the resolver has performed.
func (r *Registry) SearchCount() int64 {
	return r.searches.Load()
}

// Reset clears the descriptor maps and the namespace memo together, so
// previously found types resolve from scratch and previously searched
// namespaces are probed again. Identifiers issued by AllocateID are
// deliberately left intact — notification consumers hold them.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]*descriptor.Component)
	r.byType = make(map[string]*descriptor.Component)
	r.searched = make(map[string]string)
}

// Resolve finds or builds the descriptor for a type. The type name is the
// hint when given, otherwise the fully qualified name of t (or of instance's
// type when t is nil). Resolution order: store lookup, namespace hierarchy
// search, introspection. An unresolvable type is not an error — the caller
// gets nil and a warning is logged, since introspection is meant to be the
// universal fallback.
func (r *Registry) Resolve(ctx context.Context, instance any, t reflect.Type, typeHint string) *descriptor.Component {
	logger := ctxlog.FromContext(ctx)

	if t == nil && instance != nil {
		t = reflect.TypeOf(instance)
	}
	typeName := typeHint
	if typeName == "" && t != nil {
		typeName = introspect.TypeName(t)
	}
	if typeName == "" {
		logger.Warn("Descriptor resolution without type or instance.")
		return nil
	}

	if d := r.FindDescriptor(typeName); d != nil {
		return d
	}

	r.resolveMu.Lock()
	defer r.resolveMu.Unlock()

	// Re-check: another caller may have populated the store while we waited.
	r.mu.RLock()
	d := r.find(typeName)
	r.mu.RUnlock()
	if d != nil {
		return d
	}

	logger.Debug("Looking for descriptor document.", "type", typeName)
	if d := r.searchHierarchy(ctx, typeName); d != nil {
		return d
	}

	if t == nil {
		logger.Warn("No metadata found.", "type", typeName)
		return nil
	}

	logger.Debug("Introspecting.", "type", typeName)
	if _, err := r.loader.Load(ctx, loader.StrategyIntrospection, t, typeName); err != nil {
		logger.Warn("Introspection failed.", "type", typeName, "error", err)
		return nil
	}

	r.mu.RLock()
	d = r.find(typeName)
	r.mu.RUnlock()
	if d == nil {
		logger.Warn("No metadata found.", "type", typeName)
	}
	return d
}

// searchHierarchy walks the type's namespace hierarchy upward, parsing any
// conventionally named descriptor document it finds along the way. The walk
// stops at the first namespace memoized by an earlier search: everything
// above it was covered then, so a repeat request falls through to
// introspection instead of re-probing. Every namespace visited is memoized,
// document or not, for the life of the store.
func (r *Registry) searchHierarchy(ctx context.Context, typeName string) *descriptor.Component {
	logger := ctxlog.FromContext(ctx)

	for ns := introspect.Namespace(typeName); ns != ""; ns = parentNamespace(ns) {
		r.mu.RLock()
		_, seen := r.searched[ns]
		r.mu.RUnlock()
		if seen {
			break
		}

		r.searchNamespace(ctx, ns)

		r.mu.RLock()
		d := r.find(typeName)
		r.mu.RUnlock()
		if d != nil {
			return d
		}
		logger.Debug("Descriptor document did not declare type, continuing upward.", "namespace", ns, "type", typeName)
	}
	return nil
}

// searchNamespace probes one namespace for its descriptor document and, when
// present, commits every descriptor the document declares — not just the one
// being resolved. The namespace is memoized whether or not a document exists.
// A document that exists but fails to parse is logged and memoized as
// searched; discovery failures never abort resolution.
func (r *Registry) searchNamespace(ctx context.Context, namespace string) {
	logger := ctxlog.FromContext(ctx)
	r.searches.Add(1)

	path, ok := r.locator.Find(namespace)

	r.mu.Lock()
	r.searched[namespace] = path
	r.mu.Unlock()

	if !ok {
		logger.Debug("No descriptor document in namespace.", "namespace", namespace)
		return
	}

	logger.Debug("Found descriptor document.", "namespace", namespace, "path", path)
	if _, err := r.loader.Load(ctx, "", path, ""); err != nil {
		logger.Error("Error loading descriptor document.", "path", path, "error", err)
	}
}

// parentNamespace strips the last segment: "a/b/c" -> "a/b", "a" -> "".
func parentNamespace(ns string) string {
	if i := strings.LastIndex(ns, "/"); i > 0 {
		return ns[:i]
	}
	return ""
}
