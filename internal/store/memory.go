package store

import (
	"context"
	"sync"
)

// Memory keeps a collection in insertion order behind a RWMutex
type Memory[T Record] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
}

// NewMemory creates an in-memory collection holding items in the given order.
// Items with an empty or repeated id are skipped.
func NewMemory[T Record](items ...T) *Memory[T] {
	m := &Memory[T]{index: make(map[string]int, len(items))}
	for _, item := range items {
		id := item.RecordID()
		if id == "" {
			continue
		}
		if _, exists := m.index[id]; exists {
			continue
		}
		m.index[id] = len(m.items)
		m.items = append(m.items, item)
	}
	return m
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))
	for _, item := range m.items {
		c, err := clone(item)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return clone(m.items[i])
}

func (m *Memory[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	id := item.RecordID()
	if id == "" {
		return zero, ErrMissingID
	}

	stored, err := clone(item)
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.index[id]; exists {
		return zero, ErrDuplicate
	}
	m.index[id] = len(m.items)
	m.items = append(m.items, stored)
	return clone(stored)
}

func (m *Memory[T]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T

	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return zero, ErrNotFound
	}

	working, err := clone(m.items[i])
	if err != nil {
		return zero, err
	}
	if err := mutate(&working); err != nil {
		return zero, err
	}
	if working.RecordID() != id {
		return zero, ErrIDChanged
	}

	m.items[i] = working
	return clone(working)
}
