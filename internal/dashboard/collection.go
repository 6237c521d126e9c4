package dashboard

import "sync"

// Collection is an ordered in-memory list of records keyed by ID.
// It is safe for concurrent use. Items are stored by value so that
// snapshots are never aliased by later mutations.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) int64
}

// NewCollection creates a collection using id to identify records
func NewCollection[T any](id func(T) int64, items ...T) *Collection[T] {
	c := &Collection[T]{id: id}
	c.items = append(c.items, items...)
	return c
}

// Items returns a copy of the current items
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the item with the given id
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Replace swaps the whole content
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	c.items = append(c.items[:0:0], items...)
	c.mu.Unlock()
}

// Merge appends incoming items whose id is not present yet and returns how many were added.
// Existing entries win.
func (c *Collection[T]) Merge(incoming []T) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = MergeByID(c.items, incoming, c.id)
	return len(c.items) - before
}

// Update replaces the item with fn(item). Returns false if id is absent.
func (c *Collection[T]) Update(id int64, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items[i] = fn(c.items[i])
	return true
}

// Upsert replaces the item with the same id or appends it
func (c *Collection[T]) Upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(c.id(item)); i >= 0 {
		c.items[i] = item
		return
	}
	c.items = append(c.items, item)
}

// Remove deletes the item with the given id
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// capture remembers the current state of one record and returns a func
// that puts it back: same value, same position, or absent if it was absent.
func (c *Collection[T]) capture(id int64) (restore func()) {
	c.mu.RLock()
	index := c.indexOf(id)
	var saved T
	if index >= 0 {
		saved = c.items[index]
	}
	c.mu.RUnlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		current := c.indexOf(id)
		switch {
		case index < 0 && current >= 0:
			c.items = append(c.items[:current], c.items[current+1:]...)
		case index >= 0 && current >= 0:
			c.items[current] = saved
		case index >= 0 && current < 0:
			at := index
			if at > len(c.items) {
				at = len(c.items)
			}
			c.items = append(c.items, saved)
			copy(c.items[at+1:], c.items[at:])
			c.items[at] = saved
		}
	}
}

func (c *Collection[T]) indexOf(id int64) int {
	for i, item := range c.items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}

// MergeByID returns existing followed by the incoming items whose id is not
// already present. Duplicates inside incoming are collapsed to the first one.
func MergeByID[T any](existing, incoming []T, id func(T) int64) []T {
	seen := make(map[int64]struct{}, len(existing)+len(incoming))
	out := make([]T, 0, len(existing)+len(incoming))

	for _, item := range existing {
		seen[id(item)] = struct{}{}
		out = append(out, item)
	}
	for _, item := range incoming {
		key := id(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
