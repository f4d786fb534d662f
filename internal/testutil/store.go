package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// InMemoryStore implements a generic in-memory store
type InMemoryStore[K comparable, T any] struct {
	mu    sync.RWMutex
	items map[K]T
}

// NewInMemoryStore creates a new InMemoryStore
func NewInMemoryStore[K comparable, T any]() *InMemoryStore[K, T] {
	return &InMemoryStore[K, T]{
		items: make(map[K]T),
	}
}

// Create adds a new item to the store
func (s *InMemoryStore[K, T]) Create(ctx context.Context, id K, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return fmt.Errorf("item already exists")
	}

	s.items[id] = item
	return nil
}

// List returns every item, sorted by sortFn when given. The result is never nil.
func (s *InMemoryStore[K, T]) List(ctx context.Context, sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}

	if sortFn != nil {
		sort.Slice(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}

	return result, nil
}

// Count returns the total number of items
func (s *InMemoryStore[K, T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
