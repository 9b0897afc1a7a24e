// Package handles provides a thread-safe table that maps small integer ids to
// values.
//
// A Table hands out a non-zero id for every stored value so the id can be
// kept by the holder and used later to remove exactly that entry. Once a Table
// is closed it rejects new entries; Close returns whatever was still stored so
// the owner can finish those entries itself.
package handles

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Register after the table has been closed.
var ErrClosed = errors.New("handles: table closed")

// Table stores values under unique non-zero ids.
// The zero value is not usable; call NewTable.
type Table[V any] struct {
	mu      sync.Mutex
	entries map[uintptr]V
	nextID  uintptr
	closed  bool
}

// NewTable creates an empty, open table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		entries: make(map[uintptr]V),
		nextID:  1,
	}
}

// Register stores v and returns its id.
//
// Thread-safe.
func (t *Table[V]) Register(v V) (uintptr, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrClosed
	}
	id := t.nextID
	t.nextID++
	t.entries[id] = v
	return id, nil
}

// Lookup retrieves a value by id.
//
// Thread-safe.
func (t *Table[V]) Lookup(id uintptr) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[id]
	return v, ok
}

// Unregister removes an entry and returns it. The boolean is false when the
// id was unknown or already removed, so exactly one caller observes true for
// each registered id.
//
// Thread-safe.
func (t *Table[V]) Unregister(id uintptr) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	return v, ok
}

// Prune removes every entry for which drop returns true and reports how many
// were removed. drop runs with the table locked and must not call back into it.
//
// Thread-safe.
func (t *Table[V]) Prune(drop func(V) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for id, v := range t.entries {
		if drop(v) {
			delete(t.entries, id)
			n++
		}
	}
	return n
}

// Close marks the table closed and returns the entries still stored, leaving
// the table empty. Subsequent calls return nil.
//
// Thread-safe.
func (t *Table[V]) Close() []V {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	out := make([]V, 0, len(t.entries))
	for _, v := range t.entries {
		out = append(out, v)
	}
	clear(t.entries)
	return out
}

// Closed reports whether Close has been called.
func (t *Table[V]) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Count returns the number of currently stored entries.
// Useful for debugging and testing leaks.
//
// Thread-safe.
func (t *Table[V]) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
