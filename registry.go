//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"sync"

	"github.com/obinnaokechukwu/z3go/internal/handles"
)

// minPruneAt is the live-set size at which the first prune runs.
const minPruneAt = 64

// Registry tracks the release cells of every live Object created under one
// Context so the Context can release them before its own session.
//
// The registry holds cells, not Objects: an Object stays collectable while
// registered, and a cell released by the collector is dropped by a later
// prune rather than by the collector itself.
type Registry struct {
	table *handles.Table[*cell]

	pruneMu sync.Mutex
	pruneAt int
}

func newRegistry() *Registry {
	return &Registry{table: handles.NewTable[*cell](), pruneAt: minPruneAt}
}

// register adds c to the live set and returns the token that removes it.
func (r *Registry) register(c *cell) (*Token, error) {
	id, err := r.table.Register(c)
	if err != nil {
		return nil, ErrContextClosed
	}
	r.maybePrune()
	return &Token{reg: r, id: id}, nil
}

// maybePrune drops cells already released by the collector once the live set
// has doubled since the last prune, keeping registration amortized O(1).
func (r *Registry) maybePrune() {
	r.pruneMu.Lock()
	defer r.pruneMu.Unlock()
	n := r.table.Count()
	if n < r.pruneAt {
		return
	}
	r.table.Prune((*cell).isDisposed)
	r.pruneAt = max(2*r.table.Count(), minPruneAt)
}

// Len returns the number of registered entries, including any released by
// the collector but not yet pruned.
func (r *Registry) Len() int {
	return r.table.Count()
}

// Closed reports whether the registry has been swept.
func (r *Registry) Closed() bool {
	return r.table.Closed()
}

// sweep closes the registry and releases every cell still in it. It returns
// the number of cells that still held a reference, which is the number of
// Objects the caller never disposed. New registrations fail from the moment
// sweep starts.
func (r *Registry) sweep() int {
	forced := 0
	for _, c := range r.table.Close() {
		if c.release() {
			forced++
		}
	}
	return forced
}

// Token links one Object to its context's registry. It is consumed exactly
// once, either by Cancel from the Object's own Dispose or by the context's
// teardown sweep; whichever comes second finds nothing to do.
type Token struct {
	reg *Registry
	id  uintptr
}

// Cancel removes the entry without releasing it. Safe to call more than once
// and after the registry was swept.
func (t *Token) Cancel() {
	if t == nil || t.reg == nil {
		return
	}
	t.reg.table.Unregister(t.id)
}

// Registered reports whether the token's entry is still in the live set.
func (t *Token) Registered() bool {
	if t == nil || t.reg == nil {
		return false
	}
	_, ok := t.reg.table.Lookup(t.id)
	return ok
}
