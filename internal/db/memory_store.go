package db

import (
	"context"
	"sync"
)

// MemoryStore keeps dates in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.Mutex
	records []string
}

func NewMemoryStore(records ...string) *MemoryStore {
	store := &MemoryStore{records: make([]string, 0, len(records))}
	store.records = append(store.records, records...)
	return store
}

func (store *MemoryStore) Append(_ context.Context, isoDate string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records = append(store.records, isoDate)
	return nil
}

func (store *MemoryStore) List(context.Context) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	result := make([]string, len(store.records))
	copy(result, store.records)
	return result, nil
}
