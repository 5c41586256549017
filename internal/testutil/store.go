package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/specialistvlad/mpipgo/internal/model"
	"github.com/specialistvlad/mpipgo/internal/store"
)

// ErrRejected is returned by MemoryStore for rejected filenames.
var ErrRejected = errors.New("record rejected by test store")

// MemoryStore is a store.Store that keeps records in memory and rejects the
// filenames it was created with.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]int
	filenames   []string
	reject      map[string]bool
	closed      bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(reject ...string) *MemoryStore {
	m := &MemoryStore{
		collections: make(map[string]int),
		reject:      make(map[string]bool),
	}
	for _, name := range reject {
		m.reject[name] = true
	}
	return m
}

// Save implements store.Store.
func (m *MemoryStore) Save(ctx context.Context, loc store.Location, rec *model.ParsedRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.reject[rec.Filename] {
		return ErrRejected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[loc.Collection]++
	m.filenames = append(m.filenames, rec.Filename)
	return nil
}

// Close implements store.Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Collections returns the number of stored records per collection.
func (m *MemoryStore) Collections() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.collections))
	for k, v := range m.collections {
		out[k] = v
	}
	return out
}

// Filenames returns the stored filenames in save order.
func (m *MemoryStore) Filenames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.filenames...)
}

// Closed reports whether Close was called.
func (m *MemoryStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
