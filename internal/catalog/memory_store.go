package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a Store for running without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:  make(map[int64]Book),
		nextID: 1,
	}
}

func (m *MemoryStore) Get(_ context.Context, id int64) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *MemoryStore) List(_ context.Context, limit int) ([]Book, error) {
	m.mu.RLock()
	out := make([]Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Insert(_ context.Context, in BookInput) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := in.toBook(m.nextID)
	m.books[b.ID] = b
	m.nextID++
	return &b, nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, in BookInput) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return nil, ErrNotFound
	}
	b := in.toBook(id)
	m.books[id] = b
	return &b, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return ErrNotFound
	}
	delete(m.books, id)
	return nil
}
