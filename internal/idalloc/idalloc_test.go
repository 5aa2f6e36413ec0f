package idalloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateIdempotent(t *testing.T) {
	a := New()

	first := a.Allocate("notifications", "pool.exhausted")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, a.Allocate("notifications", "pool.exhausted"))
	}
}

func TestAllocateDenseFromZero(t *testing.T) {
	a := New()

	assert.Equal(t, 0, a.Allocate("d", "first"))
	assert.Equal(t, 1, a.Allocate("d", "second"))
	assert.Equal(t, 2, a.Allocate("d", "third"))

	// Re-asking keeps the issued values.
	assert.Equal(t, 0, a.Allocate("d", "first"))
	assert.Equal(t, 2, a.Allocate("d", "third"))
}

func TestDomainsIndependent(t *testing.T) {
	a := New()

	assert.Equal(t, 0, a.Allocate("alpha", "x"))
	assert.Equal(t, 0, a.Allocate("beta", "x"))
	assert.Equal(t, 1, a.Allocate("alpha", "y"))
	assert.Equal(t, 1, a.Allocate("beta", "y"))
}

func TestEmptyNormalization(t *testing.T) {
	a := New()

	id := a.Allocate("", "")
	assert.Equal(t, 0, id)
	assert.Equal(t, id, a.Allocate("", ""))
}

func TestAllocateConcurrent(t *testing.T) {
	a := New()

	const goroutines = 32
	results := make([]int, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = a.Allocate("d", "shared")
		}(i)
	}
	wg.Wait()

	for _, id := range results {
		assert.Equal(t, results[0], id)
	}

	// The shared name consumed exactly one integer.
	assert.Equal(t, 1, a.Allocate("d", "next"))
}
