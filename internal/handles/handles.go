// Package handles keeps Go values reachable from native callbacks.
//
// Native code may not hold Go pointers, so a callback's user-data argument
// carries a small integer id instead. The trampoline looks the id up in a
// Table to recover the typed Go value it was registered with.
package handles

import (
	"sync"
)

// Table maps ids to values of one type. The zero value is ready to use.
// Ids start at 1, so 0 is free to mean "no registration" at the ABI.
type Table[T any] struct {
	mu     sync.RWMutex
	values map[uintptr]T
	nextID uintptr
}

// Register stores v and returns its id.
func (t *Table[T]) Register(v T) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.values == nil {
		t.values = make(map[uintptr]T)
	}
	t.nextID++
	id := t.nextID
	t.values[id] = v
	return id
}

// Lookup returns the value registered under id.
func (t *Table[T]) Lookup(id uintptr) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[id]
	return v, ok
}

// Unregister drops id. Unknown ids, including 0, are ignored.
func (t *Table[T]) Unregister(id uintptr) {
	if id == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.values, id)
}

// Count returns the number of live registrations.
// Tests use it to check that replaced callbacks are released.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}
