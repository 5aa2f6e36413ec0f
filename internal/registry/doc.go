// Package registry is the central descriptor store and registration workflow.
//
// The Registry holds component descriptors keyed by logical name and by
// backing-type name. Resolution tries the store first, then searches the
// type's namespace hierarchy for conventionally named descriptor documents
// (memoizing every namespace visited, hit or miss), and finally falls back to
// introspection. Registration builds a capability-table adapter from the
// resolved descriptor and binds it to a structured identifier on the
// component server, unregistering any previous holder of that identifier
// first so re-registration always replaces.
//
// A Registry is an explicit value with a controlled lifetime. Hosts that want
// a process-wide instance create one at their composition root; nothing in
// this package is global.
package registry
