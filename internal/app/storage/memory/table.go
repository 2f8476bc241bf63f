package memory

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table is an insertion-ordered keyed collection of one record type. Records
// keep the position of their first insertion when overwritten. A Table is
// safe for concurrent use.
type Table[T any] struct {
	mu    sync.RWMutex
	rows  *orderedmap.OrderedMap[string, T]
	clone func(T) T
}

// NewTable creates an empty table. clone, when non-nil, is applied to records
// on the way in and out so callers never share mutable state with the table.
func NewTable[T any](clone func(T) T) *Table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Table[T]{rows: orderedmap.New[string, T](), clone: clone}
}

// Put inserts or overwrites the record stored under id.
func (t *Table[T]) Put(id string, record T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows.Set(id, t.clone(record))
}

// Get returns the record stored under id and whether it exists.
func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	record, ok := t.rows.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(record), true
}

// Delete removes the record stored under id and reports whether one existed.
func (t *Table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.rows.Delete(id)
	return ok
}

// List returns a fresh snapshot of all records in first-insertion order.
func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, t.rows.Len())
	for pair := t.rows.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, t.clone(pair.Value))
	}
	return out
}

// Len returns the number of stored records.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows.Len()
}
