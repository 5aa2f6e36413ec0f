// Package idalloc issues small dense integers per (domain, name) pair, used
// for fast notification dispatch. Integers are issued from an independent
// per-domain counter starting at zero, never change once issued, and are
// never reclaimed — consumers index arrays by them for the process lifetime.
package idalloc

import "sync"

// Allocator assigns stable dense integers per (domain, name) pair.
type Allocator struct {
	mu      sync.Mutex
	domains map[string]map[string]int
	next    map[string]int
}

// New creates an empty allocator.
func New() *Allocator {
	return &Allocator{
		domains: make(map[string]map[string]int),
		next:    make(map[string]int),
	}
}

// Allocate returns the integer for the (domain, name) pair, issuing the next
// free integer from the domain's counter on first use. Repeated calls with
// the same pair return the same value. Absent domain or name normalize to
// the empty string.
func (a *Allocator) Allocate(domain, name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	table, ok := a.domains[domain]
	if !ok {
		table = make(map[string]int)
		a.domains[domain] = table
	}

	if id, ok := table[name]; ok {
		return id
	}

	id := a.next[domain]
	a.next[domain] = id + 1
	table[name] = id
	return id
}
