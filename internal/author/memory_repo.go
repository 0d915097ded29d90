package author

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo backs the dev server and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Author
	byEmail map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Author),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(_ context.Context, a *Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[a.Email]; taken {
		return ErrEmailTaken
	}
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()
	r.byID[a.ID] = *a
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *MemoryRepo) GetByEmail(_ context.Context, email string) (Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return Author{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return Author{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}
