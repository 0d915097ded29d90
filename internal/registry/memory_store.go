package registry

import (
	"context"
	"sync"
)

type naturalKey struct {
	title string
	isbn  string
}

// MemoryStore keeps the whole registry in process memory. It backs tests and
// the dev server; the postgres engine is the durable one.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uint64]Record
	byKey   map[naturalKey]uint64
	byHash  map[string]uint64
	nextID  uint64
}

// NewMemoryStore constructs an empty in-memory store with the counter at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uint64]Record),
		byKey:   make(map[naturalKey]uint64),
		byHash:  make(map[string]uint64),
		nextID:  1,
	}
}

// NextID returns the id the next registration will claim.
func (m *MemoryStore) NextID(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nextID, nil
}

// CreateRecord inserts the record, claims both index entries, and advances the
// counter in one step under the store lock.
func (m *MemoryStore) CreateRecord(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.ID] = rec
	m.byKey[naturalKey{title: rec.Title, isbn: rec.ISBN}] = rec.ID
	m.byHash[string(rec.ContentHash)] = rec.ID
	m.nextID++
	return nil
}

// GetRecord retrieves a record by id.
func (m *MemoryStore) GetRecord(_ context.Context, id uint64) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	return rec, ok, nil
}

// NaturalKeyTaken reports whether the (title, isbn) pair is already claimed.
func (m *MemoryStore) NaturalKeyTaken(_ context.Context, title, isbn string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byKey[naturalKey{title: title, isbn: isbn}]
	return ok, nil
}

// ContentHashTaken reports whether the content fingerprint is already claimed.
func (m *MemoryStore) ContentHashTaken(_ context.Context, hash []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byHash[string(hash)]
	return ok, nil
}

// UpdateOwner rewrites the owner of an existing record.
func (m *MemoryStore) UpdateOwner(_ context.Context, id uint64, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Owner = owner
	m.records[id] = rec
	return nil
}
