package syncx

import (
	"sync"
)

// Hashable is an interface that any type must implement to be stored in our data structure.
// The Digest() method should return the lookup key for the object.
type Hashable interface {
	Digest() string
}

// HashedSlice is a data structure that allows both indexed access and fast key-based search.
// Items sharing a digest all stay in the slice, the lookup resolves to the first of them.
type HashedSlice[T Hashable] struct {
	mu     sync.RWMutex
	slice  []T
	lookup map[string]int
}

// NewHashedSlice creates and returns an empty HashedSlice.
func NewHashedSlice[T Hashable]() *HashedSlice[T] {
	return &HashedSlice[T]{
		slice:  make([]T, 0),
		lookup: make(map[string]int),
	}
}

// Add appends a new item to the data structure. A repeated digest
// keeps its place in the slice but does not displace the item the
// lookup already points at.
func (hs *HashedSlice[T]) Add(item T) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.slice = append(hs.slice, item)
	digest := item.Digest()
	if _, exists := hs.lookup[digest]; !exists {
		hs.lookup[digest] = len(hs.slice) - 1
	}
}

// Each visits items in insertion order until f returns false.
func (hs *HashedSlice[T]) Each(f func(item T) bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	for _, item := range hs.slice {
		if !f(item) {
			break
		}
	}
}

// GetByIndex returns an item by its index in the slice.
// It returns false if the index is out of bounds.
func (hs *HashedSlice[T]) GetByIndex(index int) (T, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	if index < 0 || index >= len(hs.slice) {
		var zero T
		return zero, false
	}
	return hs.slice[index], true
}

// GetByDigest searches for an item by its digest (key), resolving to
// the first item added under it.
// It returns false if no item with that digest is found.
func (hs *HashedSlice[T]) GetByDigest(digest string) (T, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	index, found := hs.lookup[digest]
	if !found {
		var zero T
		return zero, false
	}
	return hs.slice[index], true
}

// Len returns the number of items in the data structure.
func (hs *HashedSlice[T]) Len() int {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return len(hs.slice)
}
